// Package external bridges the orders context to its sibling contexts.
// Orders never reach into another context's domain model directly; these
// adapters translate at the boundary.
package external

import (
	"context"

	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	productsports "github.com/speira/ecommerce-api/internal/domains/products/ports"
)

var _ ports.ProductCatalog = (*Catalog)(nil)

// Catalog exposes the products repository as the read-only view the
// order pipeline consumes. Chunking is the repository's concern.
type Catalog struct {
	products productsports.Repository
}

func NewCatalog(products productsports.Repository) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) BatchGet(ctx context.Context, ids []string) ([]ports.CatalogProduct, error) {
	products, err := c.products.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	view := make([]ports.CatalogProduct, len(products))
	for i, product := range products {
		view[i] = ports.CatalogProduct{
			ID:       product.ID,
			Name:     product.Name,
			ImageURL: product.ImageURL,
			Price:    product.Price,
			Stock:    product.Stock,
		}
	}
	return view, nil
}
