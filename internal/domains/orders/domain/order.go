package domain

import (
	"errors"
	"time"

	"github.com/speira/ecommerce-api/internal/shared/money"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var (
	ErrEmptyID              = errors.New("order id is required")
	ErrEmptyIdempotencyKey  = errors.New("idempotency key is required")
	ErrEmptyUserID          = errors.New("user id is required")
	ErrEmptyItems           = errors.New("order must have at least one item")
	ErrEmptyShippingAddress = errors.New("shipping address is required")
	ErrInvalidQuantity      = errors.New("item quantity must be greater than zero")
	ErrNegativePrice        = errors.New("item price must be non-negative")
	ErrInvalidStatus        = errors.New("order status is invalid")
	ErrTotalMismatch        = errors.New("order total does not equal the sum of item totals")
)

// ProductSnapshot captures the product display fields at order time.
// The snapshot is never refreshed, even if the product changes later.
type ProductSnapshot struct {
	ID       string
	Name     string
	ImageURL string
}

// Item is one order line: quantity of a product at its price when the
// order was placed.
type Item struct {
	ProductID string
	Quantity  int
	Price     money.Cents
	Total     money.Cents
	Product   ProductSnapshot
}

// Order models a confirmed purchase intent. The idempotency key is the
// natural key for deduplicating retried submissions; uniqueness is
// enforced by the storage layer at commit time.
type Order struct {
	ID              string
	IdempotencyKey  string
	UserID          string
	Status          Status
	Items           []Item
	Total           money.Cents
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder builds a pending order whose total is computed from its items.
func NewOrder(id, idempotencyKey, userID, shippingAddress string, items []Item, now time.Time) (*Order, error) {
	order := &Order{
		ID:              id,
		IdempotencyKey:  idempotencyKey,
		UserID:          userID,
		Status:          StatusPending,
		Items:           items,
		Total:           sumItemTotals(items),
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyID
	}
	if o.IdempotencyKey == "" {
		return ErrEmptyIdempotencyKey
	}
	if o.UserID == "" {
		return ErrEmptyUserID
	}
	if o.ShippingAddress == "" {
		return ErrEmptyShippingAddress
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.Price < 0 {
			return ErrNegativePrice
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.Total != sumItemTotals(o.Items) {
		return ErrTotalMismatch
	}
	return nil
}

// UpdateStatus transitions the order, accepting only known states.
func (o *Order) UpdateStatus(status Status) error {
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func sumItemTotals(items []Item) money.Cents {
	var total money.Cents
	for _, item := range items {
		total += item.Total
	}
	return total
}
