package orders

import (
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/durable/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "orders.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "ORDER_CHECKOUT"
)

// CheckoutWorkflowInput captures the payload required to place an order.
type CheckoutWorkflowInput struct {
	Checkout orderdomain.Checkout
	TraceID  string
}

// CheckoutWorkflow orchestrates the activities that run a checkout: the
// transactional persistence step followed by event publication.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) ([]*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "userId", input.Checkout.UserID)...)
	orders, err := sequences.RunCheckoutSequence(ctx, input.Checkout)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "userId", input.Checkout.UserID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "userId", input.Checkout.UserID, "orders", len(orders))...)
	return orders, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
