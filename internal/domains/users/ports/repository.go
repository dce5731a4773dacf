package ports

import (
	"context"
	"errors"

	"github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("user not found")

// Repository persists account profiles.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]*domain.User, *pagination.Cursor, error)
	Delete(ctx context.Context, id string) error
}
