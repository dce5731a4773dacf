package ports

import (
	"context"

	producttypes "github.com/speira/ecommerce-api/internal/domains/products/application/types"
	"github.com/speira/ecommerce-api/internal/domains/products/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input producttypes.CreateProductInput) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, input producttypes.ListProductsInput) (*producttypes.ProductsPage, error)
	UpdateProduct(ctx context.Context, input producttypes.UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
