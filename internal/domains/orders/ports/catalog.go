package ports

import (
	"context"

	"github.com/speira/ecommerce-api/internal/shared/money"
)

// CatalogProduct is the read-only product view the order pipeline needs.
type CatalogProduct struct {
	ID       string
	Name     string
	ImageURL string
	Price    money.Cents
	Stock    int
}

// ProductCatalog exposes batched product reads. Implementations chunk
// requests to the backing store's per-call limit and merge the results;
// ids without a matching product are simply absent from the result.
type ProductCatalog interface {
	BatchGet(ctx context.Context, ids []string) ([]CatalogProduct, error)
}
