package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

const tracerName = "github.com/helmandshop/shop-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, checkout domain.Checkout) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(
		attribute.String("order.user_id", checkout.UserID),
		attribute.Int("order.item_count", len(checkout.Items)),
	))
	defer span.End()
	s.logInfo(ctx, "placing order",
		slog.String("user_id", checkout.UserID),
		slog.Int("items", len(checkout.Items)))
	orders, err := s.inner.PlaceOrder(ctx, checkout)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("user_id", checkout.UserID))
	}
	s.metrics.recordPlaced(ctx, int64(len(orders)))
	s.logInfo(ctx, "order placed",
		slog.String("user_id", checkout.UserID),
		slog.Int("orders", len(orders)))
	return orders, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]ports.OrderDetail, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders", trace.WithAttributes(attribute.String("order.user_id", userID)))
	defer span.End()
	details, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user_id", userID))
	}
	return details, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Count", trace.WithAttributes(attribute.String("order.user_id", userID)))
	defer span.End()
	return s.inner.Count(ctx, userID)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	ordersPlaced      metric.Int64Counter
	checkoutsRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of order rows created by successful checkouts"))
	rejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of checkouts rejected or failed"))
	return serviceMetrics{ordersPlaced: placed, checkoutsRejected: rejected}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, n int64) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, n)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.checkoutsRejected != nil {
		m.checkoutsRejected.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ports.Service = (*Service)(nil)
