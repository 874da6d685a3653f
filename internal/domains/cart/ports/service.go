package ports

import (
	"context"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/domain"
)

// Service exposes cart use cases to adapters.
type Service interface {
	GetCart(ctx context.Context, userID string) (*domain.CartSummary, error)
	AddItem(ctx context.Context, userID string, snapshot catalogdomain.ProductSnapshot, quantity int64) (*domain.CartItem, error)
	// UpdateQuantity sets the quantity for a carted product; a quantity of
	// zero or less removes the row. The returned item is nil on removal.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int64) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Count(ctx context.Context, userID string) (int64, error)
}
