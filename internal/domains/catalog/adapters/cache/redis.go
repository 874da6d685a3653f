// Package cache decorates the catalog repository with a Redis read-through
// cache. Reads by ID are served from Redis when warm; every write path
// invalidates the affected keys. The decorator degrades to the inner
// repository on any Redis error, so a cold or absent cache is never fatal.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

const defaultTTL = 60 * time.Second

// Repository wraps an inner catalog repository with Redis caching.
type Repository struct {
	inner  ports.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Repository)

// WithTTL overrides the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithLogger attaches a logger for cache-miss diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New wires the cache decorator around the inner repository.
func New(inner ports.Repository, rdb *redis.Client, opts ...Option) *Repository {
	r := &Repository{inner: inner, rdb: rdb, ttl: defaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved, err := r.inner.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, saved.ID)
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if cached := r.lookup(ctx, id); cached != nil {
		return cached, nil
	}
	product, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, product)
	return product, nil
}

func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	return r.inner.GetByIDs(ctx, ids)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.inner.List(ctx)
}

func (r *Repository) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	updated, err := r.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	deleted, err := r.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return deleted, nil
}

// InvalidateMany drops the cache entries for the given product IDs. The
// checkout unit of work calls this after decrementing stock so cached stock
// figures never outlive a sale by more than one request.
func (r *Repository) InvalidateMany(ctx context.Context, ids []string) {
	for _, id := range ids {
		r.invalidate(ctx, id)
	}
}

func (r *Repository) lookup(ctx context.Context, id string) *domain.Product {
	if r.rdb == nil {
		return nil
	}
	raw, err := r.rdb.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if r.logger != nil && err != redis.Nil {
			r.logger.Warn("catalog cache lookup failed", slog.String("error", err.Error()))
		}
		return nil
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil
	}
	return &product
}

func (r *Repository) store(ctx context.Context, product *domain.Product) {
	if r.rdb == nil || product == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, productKey(product.ID), raw, r.ttl).Err(); err != nil && r.logger != nil {
		r.logger.Warn("catalog cache store failed", slog.String("error", err.Error()))
	}
}

func (r *Repository) invalidate(ctx context.Context, id string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, productKey(id)).Err(); err != nil && r.logger != nil {
		r.logger.Warn("catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}

func productKey(id string) string { return "catalog:product:" + id }
