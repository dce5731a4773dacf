package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service orchestrates the orders bounded context use cases. Each call is
// an independent, stateless unit of work; all cross-request consistency
// is delegated to the transaction writer's conditional commit.
type Service struct {
	repo    ports.Repository
	catalog ports.ProductCatalog
	users   ports.UserDirectory
	tx      ports.TransactionWriter

	now   func() time.Time
	newID func() string
}

// Option customizes service construction.
type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides order id generation for deterministic testing.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the orders service with its collaborators.
func NewService(repo ports.Repository, catalog ports.ProductCatalog, users ports.UserDirectory, tx ports.TransactionWriter, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		users:   users,
		tx:      tx,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder converts a cart into a durably persisted order.
//
// The pipeline is strictly sequential: resolve the idempotency key,
// plan the stock reservation, then commit the order and all stock
// decrements in one atomic transaction. A conditional-commit failure is
// disambiguated by re-reading the key: a concurrent duplicate that won
// the race is returned as a successful idempotent result, while a stock
// race surfaces ErrOrderConflict. Transient storage errors propagate
// unclassified so callers can retry correctly.
func (s *Service) CreateOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*ordertypes.OrderProjection, error) {
	existing, err := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.enrich(ctx, existing), nil
	}

	user, err := s.users.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	plan, err := s.planReservation(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(s.newID(), input.IdempotencyKey, input.UserID, input.ShippingAddress, plan.items, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.tx.Commit(ctx, order, plan.decrements); err != nil {
		if !errors.Is(err, ports.ErrConditionFailed) {
			return nil, err
		}
		// A condition failed: either a concurrent request with the same
		// key won the race, or stock moved underneath us. Re-reading the
		// key tells the two apart.
		winner, lookupErr := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if winner != nil {
			return s.enrich(ctx, winner), nil
		}
		return nil, ErrOrderConflict
	}

	return &ordertypes.OrderProjection{Order: order, User: user}, nil
}

// GetOrderByID loads a single order, enriched with its owner's profile.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*ordertypes.OrderProjection, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, order), nil
}

// ListOrders pages through all orders.
func (s *Service) ListOrders(ctx context.Context, input ordertypes.ListOrdersInput) (*ordertypes.OrdersPage, error) {
	cursor, err := decodeToken(input.NextToken)
	if err != nil {
		return nil, err
	}
	orders, next, err := s.repo.List(ctx, clampLimit(input.Limit), cursor)
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, orders, next)
}

// GetOrdersByUser pages through one user's orders, most recent first.
func (s *Service) GetOrdersByUser(ctx context.Context, input ordertypes.OrdersByUserInput) (*ordertypes.OrdersPage, error) {
	cursor, err := decodeToken(input.NextToken)
	if err != nil {
		return nil, err
	}
	orders, next, err := s.repo.ListByUser(ctx, input.UserID, clampLimit(input.Limit), cursor)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return &ordertypes.OrdersPage{Orders: []*ordertypes.OrderProjection{}}, nil
	}
	// All orders share the owner, one profile lookup covers the page.
	user, err := s.users.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	page := &ordertypes.OrdersPage{Orders: make([]*ordertypes.OrderProjection, 0, len(orders))}
	for _, order := range orders {
		page.Orders = append(page.Orders, &ordertypes.OrderProjection{Order: order, User: user})
	}
	if next != nil {
		token, err := pagination.Encode(*next)
		if err != nil {
			return nil, err
		}
		page.NextToken = token
	}
	return page, nil
}

// UpdateOrder applies a partial mutation (status, shipping address) and
// refreshes the updated-at timestamp.
func (s *Service) UpdateOrder(ctx context.Context, input ordertypes.UpdateOrderInput) (*ordertypes.OrderProjection, error) {
	order, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := order.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return nil, mapError(err)
		}
	}
	if input.ShippingAddress != nil {
		if *input.ShippingAddress == "" {
			return nil, mapError(domain.ErrEmptyShippingAddress)
		}
		order.ShippingAddress = *input.ShippingAddress
	}
	order.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, updated), nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// enrich attaches the owner's profile to the order. Enrichment is
// best-effort: an unknown owner yields a nil User, never an error.
func (s *Service) enrich(ctx context.Context, order *domain.Order) *ordertypes.OrderProjection {
	projection := &ordertypes.OrderProjection{Order: order}
	if user, err := s.users.GetProfile(ctx, order.UserID); err == nil {
		projection.User = user
	}
	return projection
}

func (s *Service) buildPage(ctx context.Context, orders []*domain.Order, next *pagination.Cursor) (*ordertypes.OrdersPage, error) {
	page := &ordertypes.OrdersPage{Orders: make([]*ordertypes.OrderProjection, 0, len(orders))}
	for _, order := range orders {
		page.Orders = append(page.Orders, s.enrich(ctx, order))
	}
	if next != nil {
		token, err := pagination.Encode(*next)
		if err != nil {
			return nil, err
		}
		page.NextToken = token
	}
	return page, nil
}

func decodeToken(token string) (*pagination.Cursor, error) {
	cursor, err := pagination.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return cursor, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

var _ ports.Service = (*Service)(nil)
