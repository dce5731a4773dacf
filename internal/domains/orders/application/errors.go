package application

import (
	"errors"
	"fmt"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrUserNotFound signals the submitted owner does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrOrderConflict signals the commit lost a race on stock. The
	// request was well-formed; callers may retry with fresh data.
	ErrOrderConflict = errors.New("order could not be completed: stock may have changed, please try again")
)

// ProductNotFoundError identifies the first missing product in the cart.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %q was not found", e.ProductID)
}

// InsufficientStockError identifies the first understocked product in the
// cart, with the quantities needed to explain the rejection.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %q: available %d, requested %d", e.Name, e.Available, e.Requested)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyIdempotencyKey) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrEmptyItems) ||
		errors.Is(err, domain.ErrEmptyShippingAddress) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrTotalMismatch) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
