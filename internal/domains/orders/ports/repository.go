package ports

import (
	"context"
	"errors"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// Repository persists committed orders. Lookups by idempotency key are
// indexed, never full scans.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// GetByIdempotencyKey returns nil (not an error) when no order
	// carries the key.
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// ListByUser returns the user's orders most recent first.
	ListByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]*domain.Order, *pagination.Cursor, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]*domain.Order, *pagination.Cursor, error)
	// Update replaces the mutable fields of an existing order.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
