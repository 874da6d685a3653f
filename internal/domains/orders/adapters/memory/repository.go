package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	cartmemory "github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	catalogports "github.com/helmandshop/shop-api/internal/domains/catalog/ports"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps orders in memory for tests and DSN-less runs. Checkout
// coordinates with the catalog and cart memory adapters so its semantics
// match the transactional PostgreSQL path: all-or-nothing with stock
// decrements compensated on failure.
type Repository struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	catalog *catalogmemory.Repository
	carts   *cartmemory.Repository
}

// NewRepository wires the in-memory order store against its sibling
// catalog and cart stores.
func NewRepository(catalog *catalogmemory.Repository, carts *cartmemory.Repository) *Repository {
	return &Repository{
		orders:  map[string]*domain.Order{},
		catalog: catalog,
		carts:   carts,
	}
}

// Checkout mirrors the SQL unit of work: decrement stock per line item,
// insert the orders, clear the cart. A failed decrement restores every
// earlier one before returning, leaving no trace of the attempt.
func (r *Repository) Checkout(ctx context.Context, userID string, orders []*domain.Order) ([]*domain.Order, error) {
	if r == nil || r.catalog == nil || r.carts == nil {
		return nil, errors.New("memory orders repository not configured")
	}
	if len(orders) == 0 {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	decremented := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if err := r.catalog.DecrementStock(ctx, order.ProductID, order.Quantity); err != nil {
			for _, done := range decremented {
				_ = r.catalog.AddStock(ctx, done.ProductID, done.Quantity)
			}
			if errors.Is(err, catalogports.ErrNotFound) {
				return nil, ports.ErrProductNotFound
			}
			return nil, &ports.StockError{ProductID: order.ProductID, Requested: order.Quantity}
		}
		decremented = append(decremented, order)
	}

	now := time.Now().UTC()
	created := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		clone := *order
		clone.CreatedAt = now
		clone.UpdatedAt = now
		r.orders[clone.ID] = &clone
		out := clone
		created = append(created, &out)
	}
	if err := r.carts.ClearUser(ctx, userID); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

// ListByUser returns the user's orders, newest first.
func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		clone := *order
		orders = append(orders, &clone)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// CountByUser returns how many orders the user has placed.
func (r *Repository) CountByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, order := range r.orders {
		if order.UserID == userID {
			count++
		}
	}
	return count, nil
}
