package ports

import (
	"context"
	"errors"
	"fmt"

	addressdomain "github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrProductNotFound aborts a checkout referencing an unknown product.
	ErrProductNotFound = errors.New("checkout product not found")
	// ErrInsufficientStock aborts a checkout when a conditional stock
	// decrement would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient product stock")
)

// StockError reports which line item sank a checkout.
type StockError struct {
	ProductID string
	Requested int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// Repository persists orders. Checkout is the transactional unit of work:
// it inserts every order row, decrements each product's stock with a
// stock >= quantity guard, and clears the user's cart, all atomically.
// Any failure leaves no trace of the attempt.
type Repository interface {
	Checkout(ctx context.Context, userID string, orders []*domain.Order) ([]*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// ProductReader joins live catalog data into order views.
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*catalogdomain.Product, error)
}

// AddressReader joins shipping addresses into order views.
type AddressReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*addressdomain.ShippingAddress, error)
}
