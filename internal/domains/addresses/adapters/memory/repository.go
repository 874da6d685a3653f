package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	"github.com/helmandshop/shop-api/internal/domains/addresses/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory shipping address persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	addresses map[string]*domain.ShippingAddress
}

func NewRepository() *Repository {
	return &Repository{addresses: map[string]*domain.ShippingAddress{}}
}

func (r *Repository) Save(_ context.Context, address *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	if address == nil {
		return nil, errors.New("shipping address is nil")
	}
	clone := *address
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.ShippingAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	address, ok := r.addresses[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *address
	return &clone, nil
}

func (r *Repository) GetByIDs(_ context.Context, ids []string) ([]*domain.ShippingAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.ShippingAddress, 0, len(ids))
	for _, id := range ids {
		if address, ok := r.addresses[id]; ok {
			clone := *address
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.ShippingAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.ShippingAddress
	for _, address := range r.addresses {
		if address.UserID == userID {
			clone := *address
			list = append(list, &clone)
		}
	}
	return list, nil
}
