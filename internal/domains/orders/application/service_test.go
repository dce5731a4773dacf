package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordersexternal "github.com/speira/ecommerce-api/internal/domains/orders/adapters/external"
	ordersmemory "github.com/speira/ecommerce-api/internal/domains/orders/adapters/memory"
	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	productsmemory "github.com/speira/ecommerce-api/internal/domains/products/adapters/memory"
	productsdomain "github.com/speira/ecommerce-api/internal/domains/products/domain"
	usersmemory "github.com/speira/ecommerce-api/internal/domains/users/adapters/memory"
	usersdomain "github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/shared/money"
)

type fixture struct {
	orders   *ordersmemory.Repository
	products *productsmemory.Repository
	users    *usersmemory.Repository
	tx       ports.TransactionWriter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		orders:   ordersmemory.NewRepository(),
		products: productsmemory.NewRepository(),
		users:    usersmemory.NewRepository(),
	}
	f.tx = ordersmemory.NewTransactionWriter(f.orders, f.products)
	return f
}

func (f *fixture) service(opts ...Option) *Service {
	return NewService(
		f.orders,
		ordersexternal.NewCatalog(f.products),
		ordersexternal.NewUserDirectory(f.users),
		f.tx,
		opts...,
	)
}

func (f *fixture) seedProduct(t *testing.T, id string, price money.Cents, stock int) {
	t.Helper()
	product, err := productsdomain.NewProduct(id, "product "+id, price, stock, time.Now().UTC())
	require.NoError(t, err)
	_, err = f.products.Save(context.Background(), product)
	require.NoError(t, err)
}

func (f *fixture) seedUser(t *testing.T, id string) {
	t.Helper()
	user, err := usersdomain.NewUser(id, id+"@example.com", time.Now().UTC())
	require.NoError(t, err)
	_, err = f.users.Save(context.Background(), user)
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	product, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return product.Stock
}

func createInput(key string, items ...ordertypes.LineItemInput) ordertypes.CreateOrderInput {
	return ordertypes.CreateOrderInput{
		IdempotencyKey:  key,
		UserID:          "user-1",
		Items:           items,
		ShippingAddress: "12 Main St",
	}
}

func TestCreateOrder_ComputesIntegerCentTotals(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(29.99), 10)
	svc := f.service()

	projection, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
	require.NoError(t, err)

	order := projection.Order
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, money.Cents(5998), order.Total)
	require.InDelta(t, 59.98, order.Total.Float(), 0.0001)
	require.Len(t, order.Items, 1)
	require.Equal(t, money.Cents(2999), order.Items[0].Price)
	require.Equal(t, money.Cents(5998), order.Items[0].Total)
	require.Equal(t, "product p1", order.Items[0].Product.Name)
	require.Equal(t, 8, f.stock(t, "p1"))
	require.NotNil(t, projection.User)
	require.Equal(t, "user-1", projection.User.ID)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 10)
	svc := f.service()

	first, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 3}))
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 3}))
	require.NoError(t, err)

	require.Equal(t, first.Order.ID, second.Order.ID)
	require.Equal(t, 7, f.stock(t, "p1"), "replay must not decrement stock again")

	page, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{Limit: 100})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
}

func TestCreateOrder_ConcurrentSameKey(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(5.00), 100)
	svc := f.service()

	const goroutines = 16
	results := make([]*ordertypes.OrderProjection, goroutines)
	errs := make([]error, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.CreateOrder(context.Background(), createInput("key-race",
				ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0].Order.ID, results[i].Order.ID)
	}
	require.Equal(t, 98, f.stock(t, "p1"), "exactly one submission may decrement stock")

	page, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{Limit: 100})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
}

func TestCreateOrder_StockConservationUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(1.00), 5)
	svc := f.service()

	const goroutines = 10
	errs := make([]error, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOrder(context.Background(), createInput(fmt.Sprintf("key-%d", i),
				ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		// A loser either saw the depleted stock while planning or lost the
		// commit race itself.
		var understocked *InsufficientStockError
		if !errors.As(err, &understocked) {
			require.ErrorIs(t, err, ErrOrderConflict)
		}
	}
	require.Equal(t, 5, committed)
	require.Equal(t, 0, f.stock(t, "p1"))

	page, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{Limit: 100})
	require.NoError(t, err)
	require.Len(t, page.Orders, 5, "units sold must equal orders committed")
}

func TestCreateOrder_FailsFastOnMissingProduct(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 10)
	svc := f.service()

	_, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 1},
		ordertypes.LineItemInput{ProductID: "ghost", Quantity: 1}))

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ghost", notFound.ProductID)
	require.Equal(t, 10, f.stock(t, "p1"), "rejected submissions must not touch stock")
}

func TestCreateOrder_FailsFastOnInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 1)
	svc := f.service()

	_, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 5}))

	var understocked *InsufficientStockError
	require.ErrorAs(t, err, &understocked)
	require.Equal(t, "p1", understocked.ProductID)
	require.Equal(t, 1, understocked.Available)
	require.Equal(t, 5, understocked.Requested)
	require.Equal(t, 1, f.stock(t, "p1"))
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", money.ToCents(10.00), 10)
	svc := f.service()

	_, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Equal(t, 10, f.stock(t, "p1"))
}

// interceptWriter runs a hook once, between planning and the real commit,
// to stage deterministic races.
type interceptWriter struct {
	inner  ports.TransactionWriter
	before func(ctx context.Context)
	once   sync.Once
}

func (w *interceptWriter) Commit(ctx context.Context, order *domain.Order, decrements []ports.StockDecrement) error {
	w.once.Do(func() {
		if w.before != nil {
			w.before(ctx)
		}
	})
	return w.inner.Commit(ctx, order, decrements)
}

func TestCreateOrder_SameKeyRaceResolvesToWinner(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 10)

	rival := f.service()
	var winner *ordertypes.OrderProjection
	f.tx = &interceptWriter{
		inner: f.tx,
		before: func(ctx context.Context) {
			// A concurrent duplicate claims the key first.
			var err error
			winner, err = rival.CreateOrder(ctx, createInput("key-dup",
				ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
			require.NoError(t, err)
		},
	}
	svc := f.service()

	projection, err := svc.CreateOrder(context.Background(), createInput("key-dup",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, winner.Order.ID, projection.Order.ID, "loser must surface the winning order")
	require.Equal(t, 8, f.stock(t, "p1"), "the losing commit must roll its decrements back")
}

func TestCreateOrder_LastUnitRaceYieldsConflict(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 1)

	rival := f.service()
	f.tx = &interceptWriter{
		inner: f.tx,
		before: func(ctx context.Context) {
			// A different submission takes the last unit between our plan
			// and our commit.
			_, err := rival.CreateOrder(ctx, createInput("key-rival",
				ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
			require.NoError(t, err)
		},
	}
	svc := f.service()

	_, err := svc.CreateOrder(context.Background(), createInput("key-loser",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
	require.ErrorIs(t, err, ErrOrderConflict)
	require.Equal(t, 0, f.stock(t, "p1"))

	page, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{Limit: 100})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	require.Equal(t, "key-rival", page.Orders[0].Order.IdempotencyKey)
}

type failingWriter struct {
	err error
}

func (w *failingWriter) Commit(context.Context, *domain.Order, []ports.StockDecrement) error {
	return w.err
}

func TestCreateOrder_TransientCommitErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 10)

	transient := errors.New("connection reset by peer")
	f.tx = &failingWriter{err: transient}
	svc := f.service()

	_, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
	require.ErrorIs(t, err, transient)
	require.NotErrorIs(t, err, ErrOrderConflict)
}

func TestCreateOrder_DuplicateLineItemsShareOneRead(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(2.50), 10)
	svc := f.service()

	projection, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 1},
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
	require.NoError(t, err)
	require.Len(t, projection.Order.Items, 2)
	require.Equal(t, money.Cents(750), projection.Order.Total)
	require.Equal(t, 7, f.stock(t, "p1"))
}

func TestCreateOrder_DuplicateLinesExceedingStockRejected(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 3)
	svc := f.service()

	// Each line alone fits the stock; the combined demand does not. The
	// commit must reject the cart instead of driving stock negative.
	_, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2},
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
	require.ErrorIs(t, err, ErrOrderConflict)
	require.Equal(t, 3, f.stock(t, "p1"))

	page, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{Limit: 100})
	require.NoError(t, err)
	require.Empty(t, page.Orders)
}

func TestCreateOrder_DuplicateLinesLoseRaceWithoutOverselling(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 4)

	rival := f.service()
	f.tx = &interceptWriter{
		inner: f.tx,
		before: func(ctx context.Context) {
			// A rival takes one unit between our plan and our commit,
			// leaving too little for the duplicate lines combined.
			_, err := rival.CreateOrder(ctx, createInput("key-rival",
				ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
			require.NoError(t, err)
		},
	}
	svc := f.service()

	_, err := svc.CreateOrder(context.Background(), createInput("key-loser",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2},
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 2}))
	require.ErrorIs(t, err, ErrOrderConflict)
	require.Equal(t, 3, f.stock(t, "p1"), "only the rival's decrement may land")

	page, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{Limit: 100})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	require.Equal(t, "key-rival", page.Orders[0].Order.IdempotencyKey)
}

func TestGetOrdersByUser_MostRecentFirst(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(1.00), 100)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	svc := f.service(WithClock(func() time.Time {
		seq++
		return now.Add(time.Duration(seq) * time.Minute)
	}))

	for i := 0; i < 5; i++ {
		_, err := svc.CreateOrder(context.Background(), createInput(fmt.Sprintf("key-%d", i),
			ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
		require.NoError(t, err)
	}

	page, err := svc.GetOrdersByUser(context.Background(), ordertypes.OrdersByUserInput{UserID: "user-1", Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Orders, 3)
	require.NotEmpty(t, page.NextToken)
	for i := 1; i < len(page.Orders); i++ {
		require.False(t, page.Orders[i-1].Order.CreatedAt.Before(page.Orders[i].Order.CreatedAt))
	}

	rest, err := svc.GetOrdersByUser(context.Background(), ordertypes.OrdersByUserInput{
		UserID: "user-1", Limit: 3, NextToken: page.NextToken,
	})
	require.NoError(t, err)
	require.Len(t, rest.Orders, 2)
	require.Empty(t, rest.NextToken)
}

func TestListOrders_RejectsMalformedToken(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	_, err := svc.ListOrders(context.Background(), ordertypes.ListOrdersInput{NextToken: "not-base64!"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateOrder_PartialMutation(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "user-1")
	f.seedProduct(t, "p1", money.ToCents(10.00), 10)
	svc := f.service()

	created, err := svc.CreateOrder(context.Background(), createInput("key-1",
		ordertypes.LineItemInput{ProductID: "p1", Quantity: 1}))
	require.NoError(t, err)

	status := string(domain.StatusShipped)
	updated, err := svc.UpdateOrder(context.Background(), ordertypes.UpdateOrderInput{
		ID:     created.Order.ID,
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Order.Status)
	require.Equal(t, created.Order.ShippingAddress, updated.Order.ShippingAddress)

	bogus := "TELEPORTED"
	_, err = svc.UpdateOrder(context.Background(), ordertypes.UpdateOrderInput{
		ID:     created.Order.ID,
		Status: &bogus,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
