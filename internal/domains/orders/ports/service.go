package ports

import (
	"context"

	addressdomain "github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
)

// OrderDetail joins an order with its product and shipping address. Either
// join may be nil when the referenced row has been deleted.
type OrderDetail struct {
	Order           *domain.Order
	Product         *catalogdomain.Product
	ShippingAddress *addressdomain.ShippingAddress
}

// Service exposes order use cases to adapters.
type Service interface {
	// PlaceOrder runs the checkout unit of work and returns the created
	// orders. All-or-nothing: a single failing line item aborts the whole
	// checkout with no side effects.
	PlaceOrder(ctx context.Context, checkout domain.Checkout) ([]*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]OrderDetail, error)
	Count(ctx context.Context, userID string) (int64, error)
}

// WorkflowOrchestrator starts the checkout either durably (Temporal) or
// inline against the service.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, checkout domain.Checkout) ([]*domain.Order, error)
}

// EventPublisher emits order notifications after a successful checkout.
// Publishing is fire-and-forget: events are notifications, not state.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, orders []*domain.Order)
}
