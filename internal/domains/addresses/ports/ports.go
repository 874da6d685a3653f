package ports

import (
	"context"
	"errors"

	"github.com/helmandshop/shop-api/internal/domains/addresses/domain"
)

var ErrNotFound = errors.New("shipping address not found")

// Repository persists shipping addresses.
type Repository interface {
	Save(ctx context.Context, address *domain.ShippingAddress) (*domain.ShippingAddress, error)
	GetByID(ctx context.Context, id string) (*domain.ShippingAddress, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.ShippingAddress, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ShippingAddress, error)
}

// Service exposes shipping address use cases to adapters.
type Service interface {
	AddAddress(ctx context.Context, address domain.ShippingAddress) (*domain.ShippingAddress, error)
	ListAddresses(ctx context.Context, userID string) ([]*domain.ShippingAddress, error)
}
