package ports

import (
	"context"
	"errors"

	"github.com/helmandshop/shop-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a conditional decrement found less stock
	// than requested. Stock can never be driven below zero.
	ErrInsufficientStock = errors.New("insufficient product stock")
)

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

// ProductPatch carries the mutable fields of a product; nil means unchanged.
type ProductPatch struct {
	Name                 *string
	Description          *string
	ImageURL             *string
	Tags                 []string
	PriceInCents         *int64
	AvailableForPurchase *bool
	Weight               *string
	StockQuantity        *int64
	Category             *string
}

// Empty reports whether the patch carries no changes.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.ImageURL == nil &&
		p.Tags == nil && p.PriceInCents == nil && p.AvailableForPurchase == nil &&
		p.Weight == nil && p.StockQuantity == nil && p.Category == nil
}
