package ports

import (
	"context"
	"errors"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/domain"
)

var ErrNotFound = errors.New("cart item not found")

// Repository persists cart items.
type Repository interface {
	Save(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	Update(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	Remove(ctx context.Context, userID, productID string) error
	ClearUser(ctx context.Context, userID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// ProductReader is the slice of the catalog needed to join live product data
// into cart views.
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*catalogdomain.Product, error)
}
