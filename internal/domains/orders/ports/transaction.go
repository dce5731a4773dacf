package ports

import (
	"context"
	"errors"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
)

// ErrConditionFailed reports that at least one condition in the atomic
// commit did not hold at execution time: either the idempotency key was
// already claimed or a stock sufficiency check failed. Callers
// disambiguate by re-reading the order by its idempotency key. Any other
// error from Commit is transient and must be propagated unclassified.
var ErrConditionFailed = errors.New("transaction condition failed")

// StockDecrement is one conditional update: reduce the product's stock by
// Quantity only if stock >= Quantity still holds at commit time.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// TransactionWriter commits a new order together with its stock
// decrements as a single all-or-nothing transaction. The order insert is
// conditioned on no existing order carrying the same idempotency key.
// This is the sole serialization point across concurrent submissions;
// the application tier holds no locks.
type TransactionWriter interface {
	Commit(ctx context.Context, order *domain.Order, decrements []StockDecrement) error
}
