package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ecommerceserver "github.com/speira/ecommerce-api/go"

	ordersexternal "github.com/speira/ecommerce-api/internal/domains/orders/adapters/external"
	ordersmemory "github.com/speira/ecommerce-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/speira/ecommerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/speira/ecommerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/speira/ecommerce-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/speira/ecommerce-api/internal/domains/orders/application"
	ordersports "github.com/speira/ecommerce-api/internal/domains/orders/ports"

	productsmemory "github.com/speira/ecommerce-api/internal/domains/products/adapters/memory"
	productspostgres "github.com/speira/ecommerce-api/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/speira/ecommerce-api/internal/domains/products/application"
	productsports "github.com/speira/ecommerce-api/internal/domains/products/ports"

	usersmemory "github.com/speira/ecommerce-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/speira/ecommerce-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/speira/ecommerce-api/internal/domains/users/application"
	usersports "github.com/speira/ecommerce-api/internal/domains/users/ports"

	platformmigrations "github.com/speira/ecommerce-api/internal/platform/migrations"
	platformobservability "github.com/speira/ecommerce-api/internal/platform/observability"
	platformpostgres "github.com/speira/ecommerce-api/internal/platform/postgres"
)

// repositories bundles the persistence adapters picked at boot.
type repositories struct {
	orders   ordersports.Repository
	tx       ordersports.TransactionWriter
	products productsports.Repository
	users    usersports.Repository
}

// Run boots the HTTP API with observability, repositories, and the
// fulfillment orchestrator wired.
func Run(ctx context.Context) error {
	const serviceName = "ecommerce-api"
	cfg := LoadConfig()

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

	repos, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()

	productService := productsapp.NewService(repos.products)
	userService := usersapp.NewService(repos.users)

	coreOrderService := ordersapp.NewService(
		repos.orders,
		ordersexternal.NewCatalog(repos.products),
		ordersexternal.NewUserDirectory(repos.users),
		repos.tx,
	)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var fulfillment ordersports.FulfillmentOrchestrator = ordersworkflows.NewNoopFulfillment(logger)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, orders stay pending after creation", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		fulfillment = ordersworkflows.NewTemporalFulfillment(temporalClient)
		logger.Info("Temporal fulfillment enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := ecommerceserver.ApiHandleFunctions{
		OrderAPI:   ecommerceserver.NewOrderAPI(orderService, fulfillment, logger),
		ProductAPI: ecommerceserver.NewProductAPI(productService),
		UserAPI:    ecommerceserver.NewUserAPI(userService),
	}

	router := ecommerceserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("ecommerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("ecommerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories picks Postgres adapters when a database is reachable
// and in-memory adapters otherwise. All contexts share the choice so the
// transactional commit always spans a single store.
func buildRepositories(ctx context.Context, logger *slog.Logger) (repositories, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		ordersRepo := ordersmemory.NewRepository()
		productsRepo := productsmemory.NewRepository()
		return repositories{
			orders:   ordersRepo,
			tx:       ordersmemory.NewTransactionWriter(ordersRepo, productsRepo),
			products: productsRepo,
			users:    usersmemory.NewRepository(),
		}, cleanup
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
	}
	return repositories{
		orders:   orderspostgres.NewRepository(db),
		tx:       orderspostgres.NewTransactionWriter(db),
		products: productspostgres.NewRepository(db),
		users:    userspostgres.NewRepository(db),
	}, cleanup
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
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
