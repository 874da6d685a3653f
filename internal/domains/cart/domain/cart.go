package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
)

var (
	ErrMissingUser       = errors.New("cart user is required")
	ErrIncompleteProduct = errors.New("product information is incomplete")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
)

// CartItem is one product entry in a user's cart. ProductData is the
// immutable snapshot captured when the item was added; the live product may
// have changed or vanished since.
type CartItem struct {
	ID          string
	UserID      string
	ProductID   string
	Quantity    int64
	ProductData catalogdomain.ProductSnapshot
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCartItem validates and constructs a cart item, minting an ID when absent.
func NewCartItem(userID string, snapshot catalogdomain.ProductSnapshot, quantity int64) (*CartItem, error) {
	item := &CartItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProductID:   snapshot.ID,
		Quantity:    quantity,
		ProductData: snapshot,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate enforces invariants on the cart item.
func (c *CartItem) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrMissingUser
	}
	if strings.TrimSpace(c.ProductID) == "" {
		return ErrIncompleteProduct
	}
	if c.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// CartLine pairs a cart item with the live product when it still exists.
// Product is nil when the catalog entry is gone; callers fall back to the
// stored snapshot.
type CartLine struct {
	Item    *CartItem
	Product *catalogdomain.Product
}

// EffectivePriceInCents prefers the live catalog price over the snapshot.
func (l CartLine) EffectivePriceInCents() int64 {
	if l.Product != nil {
		return l.Product.PriceInCents
	}
	return l.Item.ProductData.PriceInCents
}

// CartSummary is the aggregated view of a user's cart.
type CartSummary struct {
	Lines      []CartLine
	TotalItems int64
	// TotalPrice is expressed in major currency units.
	TotalPrice float64
}

// Summarize joins cart lines into the aggregate view.
func Summarize(lines []CartLine) *CartSummary {
	summary := &CartSummary{Lines: lines}
	var totalCents int64
	for _, line := range lines {
		summary.TotalItems += line.Item.Quantity
		totalCents += line.EffectivePriceInCents() * line.Item.Quantity
	}
	summary.TotalPrice = float64(totalCents) / 100
	return summary
}
