//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/domains/users/ports"
	"github.com/speira/ecommerce-api/internal/platform/migrations"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("ecommerce_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newUser(t *testing.T, id, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, email, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	user.FirstName = "Jane"
	user.LastName = "Doe"
	return user
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user := newUser(t, "u1", "jane@example.com")
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID)
	assert.Equal(t, domain.RoleCustomer, saved.Role)
	assert.True(t, saved.IsActive)

	fetched, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", fetched.Email)
	assert.Equal(t, "Jane", fetched.FirstName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SaveUpsertsExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user := newUser(t, "u1", "jane@example.com")
	_, err := repo.Save(ctx, user)
	require.NoError(t, err)

	require.NoError(t, user.SetRole(domain.RoleAdmin))
	user.IsActive = false
	updated, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestRepository_ListPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := repo.Save(ctx, newUser(t, fmt.Sprintf("u%d", i), fmt.Sprintf("user%d@example.com", i)))
		require.NoError(t, err)
	}

	first, next, err := repo.List(ctx, 3, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, next)

	second, next, err := repo.List(ctx, 3, next)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Nil(t, next)
}

func TestRepository_DeleteUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, newUser(t, "u1", "jane@example.com"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), ports.ErrNotFound)
}
