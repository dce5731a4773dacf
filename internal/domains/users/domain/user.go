package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyID      = errors.New("user id is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrInvalidRole  = errors.New("role must be admin or customer")
)

// Roles an account can hold. Identity itself is established upstream;
// the role only drives coarse authorization at the gateway.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is an account profile. There are no credentials here.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds an active customer profile ensuring required invariants.
func NewUser(id, email string, now time.Time) (*User, error) {
	user := &User{
		ID:        id,
		Role:      RoleCustomer,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// SetEmail trims and validates the address.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetRole validates against the known roles.
func (u *User) SetRole(role string) error {
	if role != RoleAdmin && role != RoleCustomer {
		return ErrInvalidRole
	}
	u.Role = role
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyID
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	return u.SetRole(u.Role)
}
