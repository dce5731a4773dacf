// Package types holds the transport-agnostic inputs of the catalog use
// cases.
package types

import (
	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/shared/money"
)

// CreateProductInput carries a new catalog entry.
type CreateProductInput struct {
	Name        string
	Description string
	Price       money.Cents
	Stock       int
	ImageURL    string
	Categories  []string
}

// UpdateProductInput is a partial catalog mutation; nil fields are left
// untouched.
type UpdateProductInput struct {
	ID          string
	Name        *string
	Description *string
	Price       *money.Cents
	Stock       *int
	ImageURL    *string
	Categories  *[]string
}

// ListProductsInput pages through the catalog.
type ListProductsInput struct {
	Limit     int
	NextToken string
}

// ProductsPage is one catalog page plus the cursor for the next one.
type ProductsPage struct {
	Products  []*domain.Product
	NextToken string
}
