package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/helmandshop/shop-api/internal/domains/orders/application"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
	orderactivities "github.com/helmandshop/shop-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/helmandshop/shop-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCheckoutWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCheckoutWorkflows)(nil)
)

// TemporalCheckoutWorkflows starts checkouts on a Temporal cluster.
type TemporalCheckoutWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckoutWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCheckoutWorkflows(c client.Client) *TemporalCheckoutWorkflows {
	return &TemporalCheckoutWorkflows{client: c, taskQueue: orderworkflows.CheckoutTaskQueue}
}

// PlaceOrder starts the durable checkout workflow and waits for its result.
// Malformed checkouts are rejected before anything reaches the cluster.
func (o *TemporalCheckoutWorkflows) PlaceOrder(ctx context.Context, checkout domain.Checkout) ([]*domain.Order, error) {
	if err := checkout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", orderapp.ErrInvalidInput, err)
	}
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("order-checkout-%s-%s", checkout.UserID, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.CheckoutWorkflow,
		orderworkflows.CheckoutWorkflowInput{Checkout: checkout, TraceID: traceComponent},
	)
	if err != nil {
		// a resubmitted checkout with the same workflow ID attaches to the
		// original run instead of failing
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var orders []*domain.Order
	if err := run.Get(ctx, &orders); err != nil {
		return nil, checkoutError(err)
	}
	return orders, nil
}

// checkoutError maps typed workflow failures back onto the service's error
// contract. Serialization across the cluster strips Go error identity, so
// the rejection type travels as an application error type string.
func checkoutError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.InsufficientStockErrorType:
		var productID string
		var requested int64
		if appErr.HasDetails() && appErr.Details(&productID, &requested) == nil {
			return fmt.Errorf("%w: %w", orderapp.ErrUnprocessable,
				&ports.StockError{ProductID: productID, Requested: requested})
		}
		return fmt.Errorf("%w: %w", orderapp.ErrUnprocessable, ports.ErrInsufficientStock)
	case orderactivities.ProductNotFoundErrorType:
		return fmt.Errorf("%w: %w", orderapp.ErrUnprocessable, ports.ErrProductNotFound)
	case orderactivities.InvalidCheckoutErrorType:
		return fmt.Errorf("%w: %s", orderapp.ErrInvalidInput, appErr.Message())
	}
	return err
}

// InlineCheckoutWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineCheckoutWorkflows struct {
	service ports.Service
}

// NewInlineCheckoutWorkflows wraps the order service for synchronous execution.
func NewInlineCheckoutWorkflows(service ports.Service) *InlineCheckoutWorkflows {
	return &InlineCheckoutWorkflows{service: service}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineCheckoutWorkflows) PlaceOrder(ctx context.Context, checkout domain.Checkout) ([]*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout workflows not configured")
	}
	return o.service.PlaceOrder(ctx, checkout)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
