// Package mapper translates between the products HTTP payloads and the
// application inputs. Prices cross this boundary as two-decimal floats.
package mapper

import (
	"time"

	producttypes "github.com/speira/ecommerce-api/internal/domains/products/application/types"
	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/shared/money"
)

// CreateProductRequest captures an inbound catalog entry.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// UpdateProductRequest is a partial catalog mutation; absent fields are
// left untouched.
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Categories  *[]string `json:"categories,omitempty"`
}

// Product is the HTTP representation of a catalog entry.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductsPage is one catalog page plus the cursor for the next one.
type ProductsPage struct {
	Products  []Product `json:"products"`
	NextToken string    `json:"nextToken,omitempty"`
}

// ToCreateInput converts an inbound entry into the application input.
func ToCreateInput(request CreateProductRequest) producttypes.CreateProductInput {
	return producttypes.CreateProductInput{
		Name:        request.Name,
		Description: request.Description,
		Price:       money.ToCents(request.Price),
		Stock:       request.Stock,
		ImageURL:    request.ImageURL,
		Categories:  request.Categories,
	}
}

// ToUpdateInput converts a partial mutation into the application input.
func ToUpdateInput(id string, request UpdateProductRequest) producttypes.UpdateProductInput {
	input := producttypes.UpdateProductInput{
		ID:          id,
		Name:        request.Name,
		Description: request.Description,
		Stock:       request.Stock,
		ImageURL:    request.ImageURL,
		Categories:  request.Categories,
	}
	if request.Price != nil {
		price := money.ToCents(*request.Price)
		input.Price = &price
	}
	return input
}

// FromDomainProduct maps a catalog entry into its transport shape.
func FromDomainProduct(p *domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Float(),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Categories:  append([]string{}, p.Categories...),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromPage maps an application page into its transport shape.
func FromPage(page *producttypes.ProductsPage) ProductsPage {
	products := make([]Product, 0, len(page.Products))
	for _, product := range page.Products {
		products = append(products, FromDomainProduct(product))
	}
	return ProductsPage{Products: products, NextToken: page.NextToken}
}
