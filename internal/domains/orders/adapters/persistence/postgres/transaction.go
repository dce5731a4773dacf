package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
)

var _ ports.TransactionWriter = (*TransactionWriter)(nil)

// TransactionWriter commits an order and its stock decrements in one
// database transaction. Both contexts share the database, so the
// conditional updates and the conditional insert land or roll back
// together.
type TransactionWriter struct {
	db *gorm.DB
}

// NewTransactionWriter wires the writer. Requires TranslateError on the
// GORM session so unique violations surface as gorm.ErrDuplicatedKey.
func NewTransactionWriter(db *gorm.DB) *TransactionWriter {
	return &TransactionWriter{db: db}
}

func (w *TransactionWriter) Commit(ctx context.Context, order *domain.Order, decrements []ports.StockDecrement) error {
	if w == nil || w.db == nil {
		return errors.New("postgres transaction writer not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dec := range decrements {
			result := tx.Table("products").
				Where("id = ? AND stock >= ?", dec.ProductID, dec.Quantity).
				Update("stock", gorm.Expr("stock - ?", dec.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: stock condition on product %s", ports.ErrConditionFailed, dec.ProductID)
			}
		}
		record := toRecord(order)
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: idempotency key already claimed", ports.ErrConditionFailed)
			}
			return err
		}
		return nil
	})
}
