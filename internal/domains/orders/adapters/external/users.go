package external

import (
	"context"
	"errors"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	usersports "github.com/speira/ecommerce-api/internal/domains/users/ports"
)

var _ ports.UserDirectory = (*UserDirectory)(nil)

// UserDirectory resolves order owners from the users repository. An
// unknown user maps to (nil, nil) so callers can distinguish absence
// from lookup failure.
type UserDirectory struct {
	users usersports.Repository
}

func NewUserDirectory(users usersports.Repository) *UserDirectory {
	return &UserDirectory{users: users}
}

func (d *UserDirectory) GetProfile(ctx context.Context, userID string) (*ordertypes.UserProfile, error) {
	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usersports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ordertypes.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		Phone:     user.Phone,
		Address:   user.Address,
	}, nil
}
