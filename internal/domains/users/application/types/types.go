// Package types holds the transport-agnostic inputs of the users use
// cases.
package types

import "github.com/speira/ecommerce-api/internal/domains/users/domain"

// CreateUserInput carries a new account profile.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	Phone     string
	Address   string
}

// UpdateUserInput is a partial profile mutation; nil fields are left
// untouched.
type UpdateUserInput struct {
	ID        string
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
	Phone     *string
	Address   *string
}

// ListUsersInput pages through accounts.
type ListUsersInput struct {
	Limit     int
	NextToken string
}

// UsersPage is one page of accounts plus the cursor for the next one.
type UsersPage struct {
	Users     []*domain.User
	NextToken string
}
