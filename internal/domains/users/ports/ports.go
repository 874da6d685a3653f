package ports

import (
	"context"
	"errors"

	"github.com/helmandshop/shop-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository persists users.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ActivityCounter reports how many items of some kind a user owns. The cart,
// favorites, and orders contexts each provide one for profile stats.
type ActivityCounter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

// ActivityCounterFunc adapts a function to the ActivityCounter interface.
type ActivityCounterFunc func(ctx context.Context, userID string) (int64, error)

func (f ActivityCounterFunc) Count(ctx context.Context, userID string) (int64, error) {
	return f(ctx, userID)
}

// Service exposes user use cases to adapters.
type Service interface {
	RegisterUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
}
