package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
	orderactivities "github.com/helmandshop/shop-api/internal/durable/temporal/activities/orders"
)

// RunCheckoutSequence executes the ordered activities of a checkout. The
// persistence activity runs at most once: the checkout transaction is not
// idempotent, and a retry after an ambiguous failure could double-charge
// stock. Event publication is safe to retry.
func RunCheckoutSequence(ctx workflow.Context, checkout orderdomain.Checkout) ([]*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "userId", checkout.UserID, "items", len(checkout.Items))

	persistCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
	var orders []*orderdomain.Order
	if err := workflow.ExecuteActivity(persistCtx, orderactivities.PersistCheckoutActivityName, checkout).Get(ctx, &orders); err != nil {
		logger.Error("checkout sequence failed", "userId", checkout.UserID, "error", err)
		return nil, err
	}

	publishCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	})
	if err := workflow.ExecuteActivity(publishCtx, orderactivities.PublishOrderEventsActivityName, orders).Get(ctx, nil); err != nil {
		// Events are notifications, not state of record.
		logger.Warn("order event publication failed", "userId", checkout.UserID, "error", err)
	}

	logger.Info("checkout sequence completed", "userId", checkout.UserID, "orders", len(orders))
	return orders, nil
}
