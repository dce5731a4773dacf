package application

import (
	"context"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	"github.com/speira/ecommerce-api/internal/shared/money"
)

// reservation is the planner output: priced line items, the order total,
// and the conditional decrements the commit must apply.
type reservation struct {
	items      []domain.Item
	total      money.Cents
	decrements []ports.StockDecrement
}

// planReservation fetches the referenced products and walks the cart in
// input order, failing fast on the first missing or understocked product.
// Stock numbers read here may be stale; the sufficiency condition is
// re-checked by the storage layer at commit time.
func (s *Service) planReservation(ctx context.Context, items []ordertypes.LineItemInput) (*reservation, error) {
	products, err := s.catalog.BatchGet(ctx, distinctProductIDs(items))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]ports.CatalogProduct, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	plan := &reservation{
		items:      make([]domain.Item, 0, len(items)),
		decrements: make([]ports.StockDecrement, 0, len(items)),
	}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}

		// Each line is rounded independently in integer cents, so the
		// sum of displayed item totals always reconciles with the
		// order total.
		lineTotal := product.Price.Mul(item.Quantity)
		plan.total += lineTotal
		plan.items = append(plan.items, domain.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Total:     lineTotal,
			Product: domain.ProductSnapshot{
				ID:       product.ID,
				Name:     product.Name,
				ImageURL: product.ImageURL,
			},
		})
		plan.decrements = append(plan.decrements, ports.StockDecrement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return plan, nil
}

func distinctProductIDs(items []ordertypes.LineItemInput) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
