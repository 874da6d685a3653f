package ports

import (
	"context"
	"errors"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/favorites/domain"
)

var ErrNotFound = errors.New("favorite not found")

// Repository persists favorites.
type Repository interface {
	Save(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// ProductReader is the slice of the catalog needed to join live product data
// into favorite views.
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*catalogdomain.Product, error)
}

// Service exposes favorites use cases to adapters.
type Service interface {
	ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteLine, error)
	// AddFavorite is idempotent: favoriting an already-favorited product
	// returns the existing row unchanged.
	AddFavorite(ctx context.Context, userID string, snapshot catalogdomain.ProductSnapshot) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, productID string) error
	IsFavorite(ctx context.Context, userID, productID string) (bool, error)
	Count(ctx context.Context, userID string) (int64, error)
}
