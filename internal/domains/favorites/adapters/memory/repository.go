package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/helmandshop/shop-api/internal/domains/favorites/domain"
	"github.com/helmandshop/shop-api/internal/domains/favorites/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory favorites persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	favorites map[string]*domain.Favorite // keyed by userID + "/" + productID
}

func NewRepository() *Repository {
	return &Repository{favorites: map[string]*domain.Favorite{}}
}

func (r *Repository) Save(_ context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	if favorite == nil {
		return nil, errors.New("favorite is nil")
	}
	clone := *favorite
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	clone.CreatedAt = time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites[key(clone.UserID, clone.ProductID)] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByUserAndProduct(_ context.Context, userID, productID string) (*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	favorite, ok := r.favorites[key(userID, productID)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *favorite
	return &clone, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Favorite
	for _, favorite := range r.favorites {
		if favorite.UserID == userID {
			clone := *favorite
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(userID, productID)
	if _, ok := r.favorites[k]; !ok {
		return ports.ErrNotFound
	}
	delete(r.favorites, k)
	return nil
}

func (r *Repository) CountByUser(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, favorite := range r.favorites {
		if favorite.UserID == userID {
			total++
		}
	}
	return total, nil
}

func key(userID, productID string) string { return userID + "/" + productID }
