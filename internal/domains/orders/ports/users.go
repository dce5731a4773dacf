package ports

import (
	"context"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
)

// UserDirectory resolves order owners for response enrichment.
// GetProfile returns nil when the user is unknown.
type UserDirectory interface {
	GetProfile(ctx context.Context, userID string) (*ordertypes.UserProfile, error)
}
