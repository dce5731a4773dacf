package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/speira/ecommerce-api/internal/domains/users/adapters/memory"
	usertypes "github.com/speira/ecommerce-api/internal/domains/users/application/types"
	"github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/domains/users/ports"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	service := NewService(memory.NewRepository())
	var seq int
	service.newID = func() string {
		seq++
		return fmt.Sprintf("user-%03d", seq)
	}
	service.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestCreateUser_DefaultsToActiveCustomer(t *testing.T) {
	service := newTestService(t)

	user, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{
		Email:     "jane@example.com",
		FirstName: "  Jane ",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.Equal(t, "user-001", user.ID)
	require.Equal(t, "jane@example.com", user.Email)
	require.Equal(t, "Jane", user.FirstName)
	require.Equal(t, domain.RoleCustomer, user.Role)
	require.True(t, user.IsActive)
}

func TestCreateUser_WithRole(t *testing.T) {
	service := newTestService(t)

	user, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{
		Email: "ops@example.com",
		Role:  domain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, user.Role)

	_, err = service.CreateUser(context.Background(), usertypes.CreateUserInput{
		Email: "bad@example.com",
		Role:  "superuser",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateUser_RejectsBadEmail(t *testing.T) {
	service := newTestService(t)

	_, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{Email: "not-an-email"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUpdateUser_PartialMutation(t *testing.T) {
	service := newTestService(t)

	created, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{
		Email:     "jane@example.com",
		FirstName: "Jane",
	})
	require.NoError(t, err)

	inactive := false
	phone := "+1-555-0100"
	updated, err := service.UpdateUser(context.Background(), usertypes.UpdateUserInput{
		ID:       created.ID,
		IsActive: &inactive,
		Phone:    &phone,
	})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, phone, updated.Phone)
	require.Equal(t, "Jane", updated.FirstName)
	require.Equal(t, "jane@example.com", updated.Email)
}

func TestUpdateUser_RejectsBadEmail(t *testing.T) {
	service := newTestService(t)

	created, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{Email: "jane@example.com"})
	require.NoError(t, err)

	bad := "nope"
	_, err = service.UpdateUser(context.Background(), usertypes.UpdateUserInput{ID: created.ID, Email: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)

	loaded, err := service.GetUserByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", loaded.Email)
}

func TestUpdateUser_UnknownID(t *testing.T) {
	service := newTestService(t)

	email := "jane@example.com"
	_, err := service.UpdateUser(context.Background(), usertypes.UpdateUserInput{ID: "missing", Email: &email})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListUsers_Pagination(t *testing.T) {
	service := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{
			Email: fmt.Sprintf("user%d@example.com", i),
		})
		require.NoError(t, err)
	}

	first, err := service.ListUsers(context.Background(), usertypes.ListUsersInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Users, 2)
	require.NotEmpty(t, first.NextToken)

	second, err := service.ListUsers(context.Background(), usertypes.ListUsersInput{Limit: 2, NextToken: first.NextToken})
	require.NoError(t, err)
	require.Len(t, second.Users, 1)
	require.Empty(t, second.NextToken)
}

func TestDeleteUser(t *testing.T) {
	service := newTestService(t)

	created, err := service.CreateUser(context.Background(), usertypes.CreateUserInput{Email: "jane@example.com"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(context.Background(), created.ID))
	_, err = service.GetUserByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
