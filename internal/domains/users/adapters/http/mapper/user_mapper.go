// Package mapper translates between the users HTTP payloads and the
// application inputs.
package mapper

import (
	"time"

	usertypes "github.com/speira/ecommerce-api/internal/domains/users/application/types"
	"github.com/speira/ecommerce-api/internal/domains/users/domain"
)

// CreateUserRequest captures an inbound account profile.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// UpdateUserRequest is a partial profile mutation; absent fields are left
// untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// User is the HTTP representation of an account profile.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UsersPage is one page of accounts plus the cursor for the next one.
type UsersPage struct {
	Users     []User `json:"users"`
	NextToken string `json:"nextToken,omitempty"`
}

// ToCreateInput converts an inbound profile into the application input.
func ToCreateInput(request CreateUserRequest) usertypes.CreateUserInput {
	return usertypes.CreateUserInput{
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Role:      request.Role,
		Phone:     request.Phone,
		Address:   request.Address,
	}
}

// ToUpdateInput converts a partial mutation into the application input.
func ToUpdateInput(id string, request UpdateUserRequest) usertypes.UpdateUserInput {
	return usertypes.UpdateUserInput{
		ID:        id,
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Role:      request.Role,
		IsActive:  request.IsActive,
		Phone:     request.Phone,
		Address:   request.Address,
	}
}

// FromDomainUser maps an account profile into its transport shape.
func FromDomainUser(u *domain.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromPage maps an application page into its transport shape.
func FromPage(page *usertypes.UsersPage) UsersPage {
	users := make([]User, 0, len(page.Users))
	for _, user := range page.Users {
		users = append(users, FromDomainUser(user))
	}
	return UsersPage{Users: users, NextToken: page.NextToken}
}
