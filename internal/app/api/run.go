package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	"github.com/helmandshop/shop-api/internal/clients/http/openai"
	addressesmemory "github.com/helmandshop/shop-api/internal/domains/addresses/adapters/memory"
	addressespostgres "github.com/helmandshop/shop-api/internal/domains/addresses/adapters/persistence/postgres"
	addressesapp "github.com/helmandshop/shop-api/internal/domains/addresses/application"
	addressesports "github.com/helmandshop/shop-api/internal/domains/addresses/ports"
	cartmemory "github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/helmandshop/shop-api/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/helmandshop/shop-api/internal/domains/cart/application"
	cartports "github.com/helmandshop/shop-api/internal/domains/cart/ports"
	catalogcache "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/cache"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/helmandshop/shop-api/internal/domains/catalog/application"
	catalogports "github.com/helmandshop/shop-api/internal/domains/catalog/ports"
	favoritesmemory "github.com/helmandshop/shop-api/internal/domains/favorites/adapters/memory"
	favoritespostgres "github.com/helmandshop/shop-api/internal/domains/favorites/adapters/persistence/postgres"
	favoritesapp "github.com/helmandshop/shop-api/internal/domains/favorites/application"
	favoritesports "github.com/helmandshop/shop-api/internal/domains/favorites/ports"
	orderevents "github.com/helmandshop/shop-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/helmandshop/shop-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/helmandshop/shop-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/helmandshop/shop-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/helmandshop/shop-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/helmandshop/shop-api/internal/domains/orders/application"
	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
	ordersports "github.com/helmandshop/shop-api/internal/domains/orders/ports"
	usersmemory "github.com/helmandshop/shop-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/helmandshop/shop-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/helmandshop/shop-api/internal/domains/users/application"
	usersports "github.com/helmandshop/shop-api/internal/domains/users/ports"
	platformkafka "github.com/helmandshop/shop-api/internal/platform/kafka"
	"github.com/helmandshop/shop-api/internal/platform/migrations"
	platformobservability "github.com/helmandshop/shop-api/internal/platform/observability"
	platformpostgres "github.com/helmandshop/shop-api/internal/platform/postgres"
	"github.com/helmandshop/shop-api/internal/server"
)

// Run boots the shop HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "shop-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := connectDatabase(ctx, cfg, logger)
	defer closeDB()

	repos := buildRepositories(db)

	var catalogRepo catalogports.Repository = repos.catalog
	var invalidator *catalogcache.Repository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
		cached := catalogcache.New(catalogRepo, rdb,
			catalogcache.WithTTL(cfg.CatalogCacheTTL),
			catalogcache.WithLogger(logger))
		catalogRepo = cached
		invalidator = cached
		logger.Info("catalog cache enabled", slog.String("addr", cfg.RedisAddr))
	}

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

	catalogService := catalogapp.NewService(catalogRepo)
	cartService := cartapp.NewService(repos.cart, catalogRepo)
	favoritesService := favoritesapp.NewService(repos.favorites, catalogRepo)
	addressService := addressesapp.NewService(repos.addresses)
	userService := usersapp.NewService(repos.users,
		usersports.ActivityCounterFunc(repos.cart.CountByUser),
		usersports.ActivityCounterFunc(repos.favorites.CountByUser),
		usersports.ActivityCounterFunc(repos.orders.CountByUser),
	)

	orderOpts := []ordersapp.Option{
		ordersapp.WithProductReader(catalogRepo),
		ordersapp.WithAddressReader(repos.addresses),
	}
	if publisher != nil {
		orderOpts = append(orderOpts, ordersapp.WithEventPublisher(publisher))
	}
	orderService := ordersobs.New(
		ordersapp.NewService(repos.orders, orderOpts...),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineCheckoutWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalCheckoutWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	if invalidator != nil {
		orderWorkflows = &cacheInvalidatingCheckout{inner: orderWorkflows, cache: invalidator}
	}

	var chatClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		opts := []openai.Option{openai.WithBaseURL(cfg.OpenAIBaseURL), openai.WithModel(cfg.OpenAIModel)}
		chatClient, err = openai.NewClient(cfg.OpenAIAPIKey, opts...)
		if err != nil {
			return fmt.Errorf("failed to configure chat client: %w", err)
		}
	} else {
		logger.Warn("OPENAI_API_KEY not set, chat assistant disabled")
	}

	router := server.NewRouter(server.Handlers{
		HealthAPI:    server.NewHealthAPI(db),
		ProductAPI:   server.NewProductAPI(catalogService),
		CartAPI:      server.NewCartAPI(cartService),
		FavoritesAPI: server.NewFavoritesAPI(favoritesService),
		OrderAPI:     server.NewOrderAPI(orderService, orderWorkflows),
		AddressAPI:   server.NewAddressAPI(addressService),
		UserAPI:      server.NewUserAPI(userService),
		ChatAPI:      server.NewChatAPI(chatClient, cfg.ChatSystemPrompt),
	})
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// repositories groups one repository per bounded context, either all
// postgres-backed or all in-memory.
type repositories struct {
	catalog   catalogports.Repository
	cart      cartports.Repository
	favorites favoritesports.Repository
	addresses addressesports.Repository
	users     usersports.Repository
	orders    ordersports.Repository
}

func buildRepositories(db *gorm.DB) repositories {
	if db != nil {
		return repositories{
			catalog:   catalogpostgres.NewRepository(db),
			cart:      cartpostgres.NewRepository(db),
			favorites: favoritespostgres.NewRepository(db),
			addresses: addressespostgres.NewRepository(db),
			users:     userspostgres.NewRepository(db),
			orders:    orderspostgres.NewRepository(db),
		}
	}
	// The in-memory checkout shares state with the catalog and cart stores.
	catalogRepo := catalogmemory.NewRepository()
	cartRepo := cartmemory.NewRepository()
	return repositories{
		catalog:   catalogRepo,
		cart:      cartRepo,
		favorites: favoritesmemory.NewRepository(),
		addresses: addressesmemory.NewRepository(),
		users:     usersmemory.NewRepository(),
		orders:    ordersmemory.NewRepository(catalogRepo, cartRepo),
	}
}

func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// productCacheInvalidator drops cached product entries whose stock changed.
type productCacheInvalidator interface {
	InvalidateMany(ctx context.Context, ids []string)
}

// cacheInvalidatingCheckout drops cached catalog entries for the products a
// checkout touched. It wraps the orchestrator rather than the service so the
// invalidation also runs when the stock write happens in a Temporal worker
// process, below this process's cache.
type cacheInvalidatingCheckout struct {
	inner ordersports.WorkflowOrchestrator
	cache productCacheInvalidator
}

func (c *cacheInvalidatingCheckout) PlaceOrder(ctx context.Context, checkout orderdomain.Checkout) ([]*orderdomain.Order, error) {
	orders, err := c.inner.PlaceOrder(ctx, checkout)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ProductID)
	}
	c.cache.InvalidateMany(ctx, ids)
	return orders, nil
}
