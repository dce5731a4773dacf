package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/speira/ecommerce-api/internal/domains/products/adapters/memory"
	producttypes "github.com/speira/ecommerce-api/internal/domains/products/application/types"
	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/domains/products/ports"
	"github.com/speira/ecommerce-api/internal/shared/money"
)

func newTestService(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	service := NewService(repo)
	var seq int
	service.newID = func() string {
		seq++
		return fmt.Sprintf("product-%03d", seq)
	}
	service.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return service, repo
}

func TestCreateProduct(t *testing.T) {
	service, _ := newTestService(t)

	product, err := service.CreateProduct(context.Background(), producttypes.CreateProductInput{
		Name:       "  Mechanical Keyboard  ",
		Price:      money.ToCents(89.99),
		Stock:      12,
		Categories: []string{"peripherals"},
	})
	require.NoError(t, err)
	require.Equal(t, "product-001", product.ID)
	require.Equal(t, "Mechanical Keyboard", product.Name)
	require.Equal(t, money.Cents(8999), product.Price)
	require.Equal(t, 12, product.Stock)
	require.Equal(t, []string{"peripherals"}, product.Categories)

	loaded, err := service.GetProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, product.Name, loaded.Name)
}

func TestCreateProduct_RejectsInvalidInput(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.CreateProduct(context.Background(), producttypes.CreateProductInput{
		Name:  "   ",
		Price: money.Cents(100),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = service.CreateProduct(context.Background(), producttypes.CreateProductInput{
		Name:  "Widget",
		Price: money.Cents(-1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProduct_PartialMutation(t *testing.T) {
	service, _ := newTestService(t)

	created, err := service.CreateProduct(context.Background(), producttypes.CreateProductInput{
		Name:  "Widget",
		Price: money.Cents(500),
		Stock: 3,
	})
	require.NoError(t, err)

	newPrice := money.Cents(650)
	updated, err := service.UpdateProduct(context.Background(), producttypes.UpdateProductInput{
		ID:    created.ID,
		Price: &newPrice,
	})
	require.NoError(t, err)
	require.Equal(t, money.Cents(650), updated.Price)
	require.Equal(t, "Widget", updated.Name)
	require.Equal(t, 3, updated.Stock)
}

func TestUpdateProduct_RejectsInvalidMutation(t *testing.T) {
	service, _ := newTestService(t)

	created, err := service.CreateProduct(context.Background(), producttypes.CreateProductInput{
		Name:  "Widget",
		Price: money.Cents(500),
	})
	require.NoError(t, err)

	badStock := -1
	_, err = service.UpdateProduct(context.Background(), producttypes.UpdateProductInput{
		ID:    created.ID,
		Stock: &badStock,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	// The rejected mutation must not leak into the store.
	loaded, err := service.GetProductByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 0, loaded.Stock)
}

func TestUpdateProduct_UnknownID(t *testing.T) {
	service, _ := newTestService(t)

	name := "Widget"
	_, err := service.UpdateProduct(context.Background(), producttypes.UpdateProductInput{
		ID:   "missing",
		Name: &name,
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts_Pagination(t *testing.T) {
	service, _ := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := service.CreateProduct(context.Background(), producttypes.CreateProductInput{
			Name:  fmt.Sprintf("Product %d", i),
			Price: money.Cents(100),
		})
		require.NoError(t, err)
	}

	first, err := service.ListProducts(context.Background(), producttypes.ListProductsInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Products, 2)
	require.NotEmpty(t, first.NextToken)

	second, err := service.ListProducts(context.Background(), producttypes.ListProductsInput{Limit: 2, NextToken: first.NextToken})
	require.NoError(t, err)
	require.Len(t, second.Products, 2)
	require.NotEmpty(t, second.NextToken)

	third, err := service.ListProducts(context.Background(), producttypes.ListProductsInput{Limit: 2, NextToken: second.NextToken})
	require.NoError(t, err)
	require.Len(t, third.Products, 1)
	require.Empty(t, third.NextToken)

	seen := map[string]bool{}
	for _, page := range [][]*domain.Product{first.Products, second.Products, third.Products} {
		for _, p := range page {
			require.False(t, seen[p.ID], "product %s returned twice", p.ID)
			seen[p.ID] = true
		}
	}
	require.Len(t, seen, 5)
}

func TestListProducts_RejectsMalformedToken(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ListProducts(context.Background(), producttypes.ListProductsInput{NextToken: "not-base64!"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteProduct(t *testing.T) {
	service, _ := newTestService(t)

	created, err := service.CreateProduct(context.Background(), producttypes.CreateProductInput{
		Name:  "Widget",
		Price: money.Cents(500),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(context.Background(), created.ID))

	_, err = service.GetProductByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.ErrorIs(t, service.DeleteProduct(context.Background(), created.ID), ports.ErrNotFound)
}
