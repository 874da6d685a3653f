package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			clone := *product
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) Update(_ context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	applyPatch(product, patch)
	clone := *product
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	delete(r.products, id)
	clone := *product
	return &clone, nil
}

// DecrementStock atomically subtracts qty from the product's stock, failing
// with ErrInsufficientStock when not enough remains. Used by the checkout
// unit of work so two concurrent checkouts can never lose an update.
func (r *Repository) DecrementStock(_ context.Context, id string, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if product.StockQuantity < qty {
		return ports.ErrInsufficientStock
	}
	product.StockQuantity -= qty
	return nil
}

// AddStock returns qty units to the product, compensating a prior decrement.
func (r *Repository) AddStock(_ context.Context, id string, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	product.StockQuantity += qty
	return nil
}

func applyPatch(product *domain.Product, patch ports.ProductPatch) {
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Tags != nil {
		product.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.PriceInCents != nil {
		product.PriceInCents = *patch.PriceInCents
	}
	if patch.AvailableForPurchase != nil {
		product.AvailableForPurchase = *patch.AvailableForPurchase
	}
	if patch.Weight != nil {
		product.Weight = *patch.Weight
	}
	if patch.StockQuantity != nil {
		product.StockQuantity = *patch.StockQuantity
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
}
