package types

import (
	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
)

// UserProfile is the denormalized owner view attached to enriched orders.
type UserProfile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
	Phone     string
	Address   string
}

// OrderProjection is an order enriched with its owner's profile. User is
// nil when the profile could not be resolved; enrichment is best-effort
// on read paths.
type OrderProjection struct {
	Order *domain.Order
	User  *UserProfile
}

// OrdersPage is one page of enriched orders plus the cursor for the next
// page (empty when exhausted).
type OrdersPage struct {
	Orders    []*OrderProjection
	NextToken string
}
