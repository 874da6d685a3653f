package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appapi "github.com/helmandshop/shop-api/internal/app/api"
	cartmemory "github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	orderevents "github.com/helmandshop/shop-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/helmandshop/shop-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/helmandshop/shop-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/helmandshop/shop-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/helmandshop/shop-api/internal/domains/orders/application"
	ordersports "github.com/helmandshop/shop-api/internal/domains/orders/ports"
	orderactivities "github.com/helmandshop/shop-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/helmandshop/shop-api/internal/durable/temporal/workflows/orders"
	platformkafka "github.com/helmandshop/shop-api/internal/platform/kafka"
	"github.com/helmandshop/shop-api/internal/platform/migrations"
	platformobservability "github.com/helmandshop/shop-api/internal/platform/observability"
	platformpostgres "github.com/helmandshop/shop-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "shop-worker"
	cfg, err := appapi.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, cleanupRepo := buildOrderRepository(ctx, logger)
	defer cleanupRepo()

	// Constructed without the event publisher: the workflow's publish
	// activity is the single emission point for order events.
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var publisher ordersports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := platformkafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrdersTopic, 256, logger)
		producer.Start(ctx)
		defer func() {
			producer.Close()
			producer.WaitClosed()
		}()
		publisher = orderevents.NewKafkaPublisher(producer, logger)
		logger.Info("order events enabled", slog.String("topic", cfg.KafkaOrdersTopic))
	}
	checkoutActivities := orderactivities.NewActivities(orderService, publisher)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: orderworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(checkoutActivities.PersistCheckout, activity.RegisterOptions{Name: orderactivities.PersistCheckoutActivityName})
	w.RegisterActivityWithOptions(checkoutActivities.PublishOrderEvents, activity.RegisterOptions{Name: orderactivities.PublishOrderEventsActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.CheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(ctx context.Context, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(catalogmemory.NewRepository(), cartmemory.NewRepository()), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(catalogmemory.NewRepository(), cartmemory.NewRepository()), func() {}
	}
	logger.Info("worker order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}
