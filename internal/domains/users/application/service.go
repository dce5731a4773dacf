package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	usertypes "github.com/speira/ecommerce-api/internal/domains/users/application/types"
	"github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/domains/users/ports"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service exposes users bounded context use cases.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreateUser(ctx context.Context, input usertypes.CreateUserInput) (*domain.User, error) {
	user, err := domain.NewUser(s.newID(), input.Email, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Address = strings.TrimSpace(input.Address)
	if input.Role != "" {
		if err := user.SetRole(input.Role); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, input usertypes.ListUsersInput) (*usertypes.UsersPage, error) {
	cursor, err := pagination.Decode(input.NextToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	users, next, err := s.repo.List(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}
	page := &usertypes.UsersPage{Users: users}
	if next != nil {
		token, err := pagination.Encode(*next)
		if err != nil {
			return nil, err
		}
		page.NextToken = token
	}
	return page, nil
}

func (s *Service) UpdateUser(ctx context.Context, input usertypes.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if err := user.SetRole(*input.Role); err != nil {
			return nil, mapError(err)
		}
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	user.UpdatedAt = s.now().UTC()
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
