package ports

import (
	"context"

	usertypes "github.com/speira/ecommerce-api/internal/domains/users/application/types"
	"github.com/speira/ecommerce-api/internal/domains/users/domain"
)

// Service exposes users bounded context use cases.
type Service interface {
	CreateUser(ctx context.Context, input usertypes.CreateUserInput) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, input usertypes.ListUsersInput) (*usertypes.UsersPage, error)
	UpdateUser(ctx context.Context, input usertypes.UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
