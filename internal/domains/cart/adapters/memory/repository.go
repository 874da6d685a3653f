package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/helmandshop/shop-api/internal/domains/cart/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	items map[string]*domain.CartItem // keyed by userID + "/" + productID
}

func NewRepository() *Repository {
	return &Repository{items: map[string]*domain.CartItem{}}
}

func (r *Repository) Save(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if item == nil {
		return nil, errors.New("cart item is nil")
	}
	clone := *item
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key(clone.UserID, clone.ProductID)] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if item == nil {
		return nil, errors.New("cart item is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[key(item.UserID, item.ProductID)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.Quantity = item.Quantity
	stored.ProductData = item.ProductData
	stored.UpdatedAt = time.Now()
	clone := *stored
	return &clone, nil
}

func (r *Repository) GetByUserAndProduct(_ context.Context, userID, productID string) (*domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[key(userID, productID)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			clone := *item
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(userID, productID)
	if _, ok := r.items[k]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, k)
	return nil
}

func (r *Repository) ClearUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, item := range r.items {
		if item.UserID == userID {
			delete(r.items, k)
		}
	}
	return nil
}

func (r *Repository) CountByUser(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, item := range r.items {
		if item.UserID == userID {
			total += item.Quantity
		}
	}
	return total, nil
}

func key(userID, productID string) string { return userID + "/" + productID }
