package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	producttypes "github.com/speira/ecommerce-api/internal/domains/products/application/types"
	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/domains/products/ports"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service orchestrates catalog use cases.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

// NewService wires the catalog service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// CreateProduct persists a new catalog entry.
func (s *Service) CreateProduct(ctx context.Context, input producttypes.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(s.newID(), input.Name, input.Price, input.Stock, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	product.Description = input.Description
	product.ImageURL = input.ImageURL
	product.Categories = append([]string{}, input.Categories...)
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetProductByID loads a single catalog entry.
func (s *Service) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts pages through the catalog.
func (s *Service) ListProducts(ctx context.Context, input producttypes.ListProductsInput) (*producttypes.ProductsPage, error) {
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
	products, next, err := s.repo.List(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}
	page := &producttypes.ProductsPage{Products: products}
	if next != nil {
		token, err := pagination.Encode(*next)
		if err != nil {
			return nil, err
		}
		page.NextToken = token
	}
	return page, nil
}

// UpdateProduct applies a partial mutation and refreshes the timestamp.
func (s *Service) UpdateProduct(ctx context.Context, input producttypes.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Categories != nil {
		product.Categories = append([]string{}, (*input.Categories)...)
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	product.UpdatedAt = s.now().UTC()
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteProduct removes a catalog entry.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
