package ports

import (
	"context"
	"errors"

	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock reports a failed decrement condition: at least
	// one product's stock was below the requested quantity at execution
	// time. No decrement is applied when any condition fails.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockDecrement asks for a product's stock to be reduced by Quantity,
// conditioned on stock >= Quantity holding at execution time.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// Repository persists catalog entries and applies conditional stock
// mutations.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// BatchGet resolves many ids in one logical read. Implementations
	// chunk to the backing store's per-request limit and merge results;
	// unknown ids are absent from the result, not an error.
	BatchGet(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]*domain.Product, *pagination.Cursor, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock applies all decrements atomically: either every
	// condition holds and every decrement lands, or none do
	// (ErrInsufficientStock).
	DecrementStock(ctx context.Context, decrements []StockDecrement) error
}
