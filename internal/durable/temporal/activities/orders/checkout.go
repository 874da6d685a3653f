package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/helmandshop/shop-api/internal/domains/orders/application"
	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
	orderports "github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

const (
	// PersistCheckoutActivityName runs the transactional checkout unit of work.
	PersistCheckoutActivityName = "orders.activities.PersistCheckout"
	// PublishOrderEventsActivityName emits order-placed events for a completed checkout.
	PublishOrderEventsActivityName = "orders.activities.PublishOrderEvents"
)

// Application error types carried across the workflow boundary. Callers map
// them back onto the service's error contract, which serialization would
// otherwise strip.
const (
	InvalidCheckoutErrorType   = "orders.errors.InvalidCheckout"
	ProductNotFoundErrorType   = "orders.errors.ProductNotFound"
	InsufficientStockErrorType = "orders.errors.InsufficientStock"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service   orderports.Service
	publisher orderports.EventPublisher
}

// NewActivities wires the order collaborators into the Temporal activities
// bundle. service should be constructed without an event publisher so the
// publish activity remains the single emission point.
func NewActivities(service orderports.Service, publisher orderports.EventPublisher) *Activities {
	return &Activities{service: service, publisher: publisher}
}

// PersistCheckout runs the checkout and returns the created orders.
func (a *Activities) PersistCheckout(ctx context.Context, checkout orderdomain.Checkout) ([]*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("checkout activity not initialized", "userId", checkout.UserID)
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("PersistCheckout activity started", "userId", checkout.UserID, "items", len(checkout.Items))
	orders, err := a.service.PlaceOrder(ctx, checkout)
	if err != nil {
		logger.Error("PersistCheckout activity failed", "userId", checkout.UserID, "error", err)
		return nil, checkoutApplicationError(err)
	}
	logger.Info("PersistCheckout activity completed", "userId", checkout.UserID, "orders", len(orders))
	return orders, nil
}

// checkoutApplicationError converts rejected checkouts into typed,
// non-retryable application errors. These rejections are deterministic, so a
// retry can only repeat them.
func checkoutApplicationError(err error) error {
	var stockErr *orderports.StockError
	switch {
	case errors.As(err, &stockErr):
		return temporal.NewNonRetryableApplicationError(
			err.Error(), InsufficientStockErrorType, nil, stockErr.ProductID, stockErr.Requested)
	case errors.Is(err, orderports.ErrProductNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ProductNotFoundErrorType, nil)
	case errors.Is(err, orderapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), InvalidCheckoutErrorType, nil)
	}
	return err
}

// PublishOrderEvents emits order-placed notifications for the given orders.
func (a *Activities) PublishOrderEvents(ctx context.Context, orders []*orderdomain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		return errors.New("order events activity not initialized")
	}
	if a.publisher == nil {
		logger.Info("event publisher not configured; skipping", "orders", len(orders))
		return nil
	}
	a.publisher.OrderPlaced(ctx, orders)
	logger.Info("PublishOrderEvents activity completed", "orders", len(orders))
	return nil
}
