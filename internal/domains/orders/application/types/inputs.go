// Package types holds the transport-agnostic inputs and projections of
// the orders use cases.
package types

// LineItemInput is one requested (product, quantity) pair. Quantity is
// validated upstream as a positive integer.
type LineItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries a create-order submission. The idempotency key
// is a client-generated token; repeated submissions with the same key
// resolve to the same committed order.
type CreateOrderInput struct {
	IdempotencyKey  string
	UserID          string
	Items           []LineItemInput
	ShippingAddress string
}

// UpdateOrderInput is a partial order mutation.
type UpdateOrderInput struct {
	ID              string
	Status          *string
	ShippingAddress *string
}

// ListOrdersInput pages through all orders.
type ListOrdersInput struct {
	Limit     int
	NextToken string
}

// OrdersByUserInput pages through one user's orders, most recent first.
type OrdersByUserInput struct {
	UserID    string
	Limit     int
	NextToken string
}
