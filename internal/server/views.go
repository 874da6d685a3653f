package server

import (
	"time"

	addressdomain "github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	cartdomain "github.com/helmandshop/shop-api/internal/domains/cart/domain"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	favoritesdomain "github.com/helmandshop/shop-api/internal/domains/favorites/domain"
	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
	orderports "github.com/helmandshop/shop-api/internal/domains/orders/ports"
	userdomain "github.com/helmandshop/shop-api/internal/domains/users/domain"
)

// JSON views keep the wire format stable regardless of domain struct changes.

type productView struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	ImageURL             string    `json:"imageUrl"`
	Tags                 []string  `json:"tags"`
	PriceInCents         int64     `json:"priceInCents"`
	AvailableForPurchase bool      `json:"availableForPurchase"`
	Weight               string    `json:"weight"`
	StockQuantity        int64     `json:"stockQuantity"`
	Category             string    `json:"category"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func toProductView(p *catalogdomain.Product) productView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productView{
		ID:                   p.ID,
		UserID:               p.UserID,
		Name:                 p.Name,
		Description:          p.Description,
		ImageURL:             p.ImageURL,
		Tags:                 tags,
		PriceInCents:         p.PriceInCents,
		AvailableForPurchase: p.AvailableForPurchase,
		Weight:               p.Weight,
		StockQuantity:        p.StockQuantity,
		Category:             p.Category,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toProductViews(products []*catalogdomain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

type cartItemView struct {
	ID          string                        `json:"id"`
	UserID      string                        `json:"userId"`
	ProductID   string                        `json:"productId"`
	Quantity    int64                         `json:"quantity"`
	ProductData catalogdomain.ProductSnapshot `json:"productData"`
	// Product is the live catalog product, falling back to the stored
	// snapshot when the product has been removed.
	Product   any       `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCartItemView(item *cartdomain.CartItem) cartItemView {
	return cartItemView{
		ID:          item.ID,
		UserID:      item.UserID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		ProductData: item.ProductData,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toCartLineView(line cartdomain.CartLine) cartItemView {
	view := toCartItemView(line.Item)
	if line.Product != nil {
		view.Product = toProductView(line.Product)
	} else {
		view.Product = line.Item.ProductData
	}
	return view
}

type cartSummaryView struct {
	Items      []cartItemView `json:"items"`
	TotalItems int64          `json:"totalItems"`
	TotalPrice float64        `json:"totalPrice"`
}

func toCartSummaryView(summary *cartdomain.CartSummary) cartSummaryView {
	items := make([]cartItemView, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		items = append(items, toCartLineView(line))
	}
	return cartSummaryView{
		Items:      items,
		TotalItems: summary.TotalItems,
		TotalPrice: summary.TotalPrice,
	}
}

type favoriteView struct {
	ID          string                        `json:"id"`
	UserID      string                        `json:"userId"`
	ProductID   string                        `json:"productId"`
	ProductData catalogdomain.ProductSnapshot `json:"productData"`
	Product     any                           `json:"product,omitempty"`
	CreatedAt   time.Time                     `json:"createdAt"`
}

func toFavoriteView(favorite *favoritesdomain.Favorite) favoriteView {
	return favoriteView{
		ID:          favorite.ID,
		UserID:      favorite.UserID,
		ProductID:   favorite.ProductID,
		ProductData: favorite.ProductData,
		CreatedAt:   favorite.CreatedAt,
	}
}

func toFavoriteLineView(line favoritesdomain.FavoriteLine) favoriteView {
	view := toFavoriteView(line.Favorite)
	if line.Product != nil {
		view.Product = toProductView(line.Product)
	} else {
		view.Product = line.Favorite.ProductData
	}
	return view
}

type orderView struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	ProductID         string    `json:"productId"`
	ShippingAddressID string    `json:"shippingAddressId"`
	Quantity          int64     `json:"quantity"`
	PricePaidInCents  int64     `json:"pricePaidInCents"`
	PaymentIntentID   string    `json:"paymentIntentId"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toOrderView(order *orderdomain.Order) orderView {
	return orderView{
		ID:                order.ID,
		UserID:            order.UserID,
		ProductID:         order.ProductID,
		ShippingAddressID: order.ShippingAddressID,
		Quantity:          order.Quantity,
		PricePaidInCents:  order.PricePaidInCents,
		PaymentIntentID:   order.PaymentIntentID,
		Status:            string(order.Status),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func toOrderViews(orders []*orderdomain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}
	return views
}

type orderDetailView struct {
	orderView
	Product         *productView `json:"product"`
	ShippingAddress *addressView `json:"shippingAddress"`
}

func toOrderDetailView(detail orderports.OrderDetail) orderDetailView {
	view := orderDetailView{orderView: toOrderView(detail.Order)}
	if detail.Product != nil {
		product := toProductView(detail.Product)
		view.Product = &product
	}
	if detail.ShippingAddress != nil {
		address := toAddressView(detail.ShippingAddress)
		view.ShippingAddress = &address
	}
	return view
}

type addressView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FullName    string    `json:"fullName"`
	Country     string    `json:"country"`
	Province    string    `json:"province"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toAddressView(address *addressdomain.ShippingAddress) addressView {
	return addressView{
		ID:          address.ID,
		UserID:      address.UserID,
		FullName:    address.FullName,
		Country:     address.Country,
		Province:    address.Province,
		City:        address.City,
		Address:     address.Address,
		PhoneNumber: address.PhoneNumber,
		CreatedAt:   address.CreatedAt,
		UpdatedAt:   address.UpdatedAt,
	}
}

type userStatsView struct {
	CartCount      int64 `json:"cartCount"`
	FavoritesCount int64 `json:"favoritesCount"`
	OrdersCount    int64 `json:"ordersCount"`
}

type userProfileView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	ImageURL  string        `json:"imageUrl"`
	Role      string        `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Stats     userStatsView `json:"stats"`
}

func toUserProfileView(profile *userdomain.Profile) userProfileView {
	return userProfileView{
		ID:        profile.User.ID,
		Name:      profile.User.Name,
		Email:     profile.User.Email,
		ImageURL:  profile.User.ImageURL,
		Role:      string(profile.User.Role),
		CreatedAt: profile.User.CreatedAt,
		UpdatedAt: profile.User.UpdatedAt,
		Stats: userStatsView{
			CartCount:      profile.Stats.CartCount,
			FavoritesCount: profile.Stats.FavoritesCount,
			OrdersCount:    profile.Stats.OrdersCount,
		},
	}
}
