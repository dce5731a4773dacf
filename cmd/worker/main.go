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

	ordersexternal "github.com/speira/ecommerce-api/internal/domains/orders/adapters/external"
	ordersmemory "github.com/speira/ecommerce-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/speira/ecommerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/speira/ecommerce-api/internal/domains/orders/application"
	ordersports "github.com/speira/ecommerce-api/internal/domains/orders/ports"
	productsmemory "github.com/speira/ecommerce-api/internal/domains/products/adapters/memory"
	productspostgres "github.com/speira/ecommerce-api/internal/domains/products/adapters/persistence/postgres"
	productsports "github.com/speira/ecommerce-api/internal/domains/products/ports"
	usersmemory "github.com/speira/ecommerce-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/speira/ecommerce-api/internal/domains/users/adapters/persistence/postgres"
	usersports "github.com/speira/ecommerce-api/internal/domains/users/ports"
	orderworkflows "github.com/speira/ecommerce-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/speira/ecommerce-api/internal/platform/observability"
	platformpostgres "github.com/speira/ecommerce-api/internal/platform/postgres"
	orderactivities "github.com/speira/ecommerce-api/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "ecommerce-worker"
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

	ordersRepo, tx, productsRepo, usersRepo, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()
	orderService := ordersapp.NewService(
		ordersRepo,
		ordersexternal.NewCatalog(productsRepo),
		ordersexternal.NewUserDirectory(usersRepo),
		tx,
	)
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderFulfillmentTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderFulfillmentWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderFulfillmentWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.UpdateOrderStatus, activity.RegisterOptions{Name: orderactivities.UpdateOrderStatusActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderFulfillmentTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (ordersports.Repository, ordersports.TransactionWriter, productsports.Repository, usersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		ordersRepo := ordersmemory.NewRepository()
		productsRepo := productsmemory.NewRepository()
		return ordersRepo, ordersmemory.NewTransactionWriter(ordersRepo, productsRepo), productsRepo, usersmemory.NewRepository(), cleanup
	}
	return orderspostgres.NewRepository(db),
		orderspostgres.NewTransactionWriter(db),
		productspostgres.NewRepository(db),
		userspostgres.NewRepository(db),
		cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
