package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cartmemory "github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	cartdomain "github.com/helmandshop/shop-api/internal/domains/cart/domain"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	ordersmemory "github.com/helmandshop/shop-api/internal/domains/orders/adapters/memory"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

type fixture struct {
	catalog *catalogmemory.Repository
	cart    *cartmemory.Repository
	svc     *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	cart := cartmemory.NewRepository()
	repo := ordersmemory.NewRepository(catalog, cart)
	return &fixture{catalog: catalog, cart: cart, svc: NewService(repo, opts...)}
}

func (f *fixture) seedProduct(t *testing.T, id string, priceInCents, stock int64) *catalogdomain.Product {
	t.Helper()
	product, err := f.catalog.Save(context.Background(), &catalogdomain.Product{
		ID:            id,
		UserID:        "seller-1",
		Name:          "Product " + id,
		ImageURL:      "https://img.example/" + id,
		PriceInCents:  priceInCents,
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) seedCartItem(t *testing.T, userID string, product *catalogdomain.Product, quantity int64) {
	t.Helper()
	item, err := cartdomain.NewCartItem(userID, product.Snapshot(), quantity)
	require.NoError(t, err)
	_, err = f.cart.Save(context.Background(), item)
	require.NoError(t, err)
}

func checkoutFor(userID string, items ...domain.LineItem) domain.Checkout {
	return domain.Checkout{
		UserID:            userID,
		Items:             items,
		ShippingAddressID: "addr-1",
		TotalAmount:       99,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, "prod-1", 500, 10)
	p2 := f.seedProduct(t, "prod-2", 250, 4)
	f.seedCartItem(t, "user-1", p1, 3)
	f.seedCartItem(t, "user-1", p2, 2)

	orders, err := f.svc.PlaceOrder(context.Background(), checkoutFor("user-1",
		domain.LineItem{ProductID: "prod-1", Quantity: 3, Price: 5},
		domain.LineItem{ProductID: "prod-2", Quantity: 2, Price: 2.5},
	))

	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, int64(1500), orders[0].PricePaidInCents)
	require.Equal(t, int64(500), orders[1].PricePaidInCents)
	require.Equal(t, domain.StatusProcessing, orders[0].Status)

	stock1, err := f.catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, int64(7), stock1.StockQuantity)
	stock2, err := f.catalog.GetByID(context.Background(), "prod-2")
	require.NoError(t, err)
	require.Equal(t, int64(2), stock2.StockQuantity)

	count, err := f.cart.CountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPlaceOrder_ValidationFailureHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "prod-1", 500, 10)
	f.seedCartItem(t, "user-1", p, 1)

	checkout := checkoutFor("user-1", domain.LineItem{ProductID: "prod-1", Quantity: 1, Price: 5})
	checkout.ShippingAddressID = ""
	_, err := f.svc.PlaceOrder(context.Background(), checkout)
	require.ErrorIs(t, err, ErrInvalidInput)

	stored, err := f.catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, int64(10), stored.StockQuantity)
	count, err := f.cart.CountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestPlaceOrder_InsufficientStockAbortsWholeCheckout(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, "prod-1", 500, 10)
	f.seedProduct(t, "prod-2", 250, 1)
	f.seedCartItem(t, "user-1", p1, 3)

	_, err := f.svc.PlaceOrder(context.Background(), checkoutFor("user-1",
		domain.LineItem{ProductID: "prod-1", Quantity: 3, Price: 5},
		domain.LineItem{ProductID: "prod-2", Quantity: 5, Price: 2.5},
	))

	require.ErrorIs(t, err, ErrUnprocessable)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	var stockErr *ports.StockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "prod-2", stockErr.ProductID)
	require.Equal(t, int64(5), stockErr.Requested)

	// The first item's decrement is rolled back and the cart survives.
	stored, err := f.catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, int64(10), stored.StockQuantity)
	count, err := f.cart.CountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	details, err := f.svc.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, details)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(context.Background(), checkoutFor("user-1",
		domain.LineItem{ProductID: "ghost", Quantity: 1, Price: 5},
	))

	require.ErrorIs(t, err, ErrUnprocessable)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestPlaceOrder_ResubmissionCreatesDistinctOrders(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "prod-1", 500, 10)

	checkout := checkoutFor("user-1", domain.LineItem{ProductID: "prod-1", Quantity: 2, Price: 5})
	first, err := f.svc.PlaceOrder(context.Background(), checkout)
	require.NoError(t, err)
	second, err := f.svc.PlaceOrder(context.Background(), checkout)
	require.NoError(t, err)

	require.NotEqual(t, first[0].ID, second[0].ID)
	stored, err := f.catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, int64(6), stored.StockQuantity)
	count, err := f.svc.Count(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

type capturingPublisher struct {
	orders []*domain.Order
}

func (p *capturingPublisher) OrderPlaced(_ context.Context, orders []*domain.Order) {
	p.orders = append(p.orders, orders...)
}

func TestPlaceOrder_PublishesEvents(t *testing.T) {
	publisher := &capturingPublisher{}
	f := newFixture(t, WithEventPublisher(publisher))
	f.seedProduct(t, "prod-1", 500, 10)

	orders, err := f.svc.PlaceOrder(context.Background(), checkoutFor("user-1",
		domain.LineItem{ProductID: "prod-1", Quantity: 1, Price: 5},
	))

	require.NoError(t, err)
	require.Len(t, publisher.orders, 1)
	require.Equal(t, orders[0].ID, publisher.orders[0].ID)
}

func TestPlaceOrder_FailedCheckoutPublishesNothing(t *testing.T) {
	publisher := &capturingPublisher{}
	f := newFixture(t, WithEventPublisher(publisher))

	_, err := f.svc.PlaceOrder(context.Background(), checkoutFor("user-1",
		domain.LineItem{ProductID: "ghost", Quantity: 1, Price: 5},
	))

	require.Error(t, err)
	require.Empty(t, publisher.orders)
}

func TestListOrders_JoinsProductsAndAddresses(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartmemory.NewRepository()
	repo := ordersmemory.NewRepository(catalog, cart)
	svc := NewService(repo, WithProductReader(catalog))
	f := &fixture{catalog: catalog, cart: cart, svc: svc}
	f.seedProduct(t, "prod-1", 500, 10)

	_, err := svc.PlaceOrder(context.Background(), checkoutFor("user-1",
		domain.LineItem{ProductID: "prod-1", Quantity: 1, Price: 5},
	))
	require.NoError(t, err)

	details, err := svc.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Product)
	require.Equal(t, "prod-1", details[0].Product.ID)
	// No address reader configured, the join is simply absent.
	require.Nil(t, details[0].ShippingAddress)
}
