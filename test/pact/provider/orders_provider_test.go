//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	pacttest "github.com/speira/ecommerce-api/test/pact"

	ecommerceserver "github.com/speira/ecommerce-api/go"
	ordersexternal "github.com/speira/ecommerce-api/internal/domains/orders/adapters/external"
	ordersmemory "github.com/speira/ecommerce-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/speira/ecommerce-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/speira/ecommerce-api/internal/domains/orders/application"
	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	productsmemory "github.com/speira/ecommerce-api/internal/domains/products/adapters/memory"
	productsapp "github.com/speira/ecommerce-api/internal/domains/products/application"
	productsdomain "github.com/speira/ecommerce-api/internal/domains/products/domain"
	usersmemory "github.com/speira/ecommerce-api/internal/domains/users/adapters/memory"
	usersapp "github.com/speira/ecommerce-api/internal/domains/users/application"
	usersdomain "github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/shared/money"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestEcommerceProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetState(t)
			if setup {
				app.seedCatalog(t, 10)
			}
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetState(t)
			if setup {
				app.seedCatalog(t, 10)
				app.seedOrder(t)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetState(t)
			return nil, nil
		},
		pacttest.StateStockDepleted: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetState(t)
			if setup {
				app.seedCatalog(t, pacttest.DepletedStock)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetState(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	orders   *ordersmemory.Repository
	products *productsmemory.Repository
	users    *usersmemory.Repository
	service  *ordersapp.Service
	orderSeq atomic.Int64
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	app := &contractProviderApp{
		orders:   ordersmemory.NewRepository(),
		products: productsmemory.NewRepository(),
		users:    usersmemory.NewRepository(),
	}
	// Order ids count up from 301 so the first order created in a fresh
	// provider state always matches the contract's fixed id.
	app.service = ordersapp.NewService(
		app.orders,
		ordersexternal.NewCatalog(app.products),
		ordersexternal.NewUserDirectory(app.users),
		ordersmemory.NewTransactionWriter(app.orders, app.products),
		ordersapp.WithIDGenerator(func() string {
			return fmt.Sprintf("order-%d", 301+app.orderSeq.Add(1)-1)
		}),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	handlers := ecommerceserver.ApiHandleFunctions{
		OrderAPI:   ecommerceserver.NewOrderAPI(app.service, ordersworkflows.NewNoopFulfillment(logger), logger),
		ProductAPI: ecommerceserver.NewProductAPI(productsapp.NewService(app.products)),
		UserAPI:    ecommerceserver.NewUserAPI(usersapp.NewService(app.users)),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = ecommerceserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	app.server = server
	return app
}

func (a *contractProviderApp) resetState(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	a.orderSeq.Store(0)

	orders, _, err := a.orders.List(ctx, 1000, nil)
	require.NoError(t, err)
	for _, order := range orders {
		_ = a.orders.Delete(ctx, order.ID)
	}
	products, _, err := a.products.List(ctx, 1000, nil)
	require.NoError(t, err)
	for _, product := range products {
		_ = a.products.Delete(ctx, product.ID)
	}
	users, _, err := a.users.List(ctx, 1000, nil)
	require.NoError(t, err)
	for _, user := range users {
		_ = a.users.Delete(ctx, user.ID)
	}
}

func (a *contractProviderApp) seedCatalog(t testing.TB, stock int) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	product, err := productsdomain.NewProduct(pacttest.CatalogProduct, "Contract Widget", money.ToCents(29.99), stock, now)
	require.NoError(t, err)
	_, err = a.products.Save(ctx, product)
	require.NoError(t, err)

	user, err := usersdomain.NewUser(pacttest.CustomerID, "contract.user@example.com", now)
	require.NoError(t, err)
	_, err = a.users.Save(ctx, user)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedOrder(t testing.TB) {
	t.Helper()
	payload := pacttest.ExampleCreateOrderPayload()
	projection, err := a.service.CreateOrder(context.Background(), ordertypes.CreateOrderInput{
		IdempotencyKey:  payload["idempotencyKey"].(string),
		UserID:          pacttest.CustomerID,
		Items:           []ordertypes.LineItemInput{{ProductID: pacttest.CatalogProduct, Quantity: 2}},
		ShippingAddress: payload["shippingAddress"].(string),
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingOrderID, projection.Order.ID)
}
