package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	productsports "github.com/speira/ecommerce-api/internal/domains/products/ports"
)

var _ ports.TransactionWriter = (*TransactionWriter)(nil)

// TransactionWriter emulates the relational commit against the in-memory
// adapters. Stock is decremented first and the order inserted last, so a
// partially committed order is never observable; a failed key claim rolls
// the decrements back before reporting the condition failure.
type TransactionWriter struct {
	orders   *Repository
	products productsports.Repository
}

func NewTransactionWriter(orders *Repository, products productsports.Repository) *TransactionWriter {
	return &TransactionWriter{orders: orders, products: products}
}

func (w *TransactionWriter) Commit(ctx context.Context, order *domain.Order, decrements []ports.StockDecrement) error {
	if err := w.products.DecrementStock(ctx, toProductDecrements(decrements)); err != nil {
		if errors.Is(err, productsports.ErrInsufficientStock) || errors.Is(err, productsports.ErrNotFound) {
			return fmt.Errorf("%w: %w", ports.ErrConditionFailed, err)
		}
		return err
	}
	if err := w.orders.insert(order); err != nil {
		rollback := toProductDecrements(decrements)
		for i := range rollback {
			rollback[i].Quantity = -rollback[i].Quantity
		}
		if rbErr := w.products.DecrementStock(ctx, rollback); rbErr != nil {
			return fmt.Errorf("rolling back stock after failed insert: %w", rbErr)
		}
		if errors.Is(err, errKeyClaimed) {
			return fmt.Errorf("%w: %w", ports.ErrConditionFailed, err)
		}
		return err
	}
	return nil
}

func toProductDecrements(decrements []ports.StockDecrement) []productsports.StockDecrement {
	out := make([]productsports.StockDecrement, len(decrements))
	for i, dec := range decrements {
		out[i] = productsports.StockDecrement{ProductID: dec.ProductID, Quantity: dec.Quantity}
	}
	return out
}
