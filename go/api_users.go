package ecommerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/speira/ecommerce-api/internal/domains/users/adapters/http/mapper"
	usertypes "github.com/speira/ecommerce-api/internal/domains/users/application/types"
	usersports "github.com/speira/ecommerce-api/internal/domains/users/ports"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service usersports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /v1/users
// Register an account profile
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload userhttpmapper.CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.CreateUser(c.Request.Context(), userhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(user))
}

// Get /v1/users/:userId
// Find user by ID
func (api *UserAPI) GetUserById(c *gin.Context) {
	user, err := api.service.GetUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Get /v1/users
// List account profiles
func (api *UserAPI) ListUsers(c *gin.Context) {
	input := usertypes.ListUsersInput{
		Limit:     parseLimit(c),
		NextToken: c.Query("nextToken"),
	}
	page, err := api.service.ListUsers(c.Request.Context(), input)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromPage(page))
}

// Put /v1/users/:userId
// Update an existing account profile
func (api *UserAPI) UpdateUser(c *gin.Context) {
	var payload userhttpmapper.UpdateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.UpdateUser(c.Request.Context(), userhttpmapper.ToUpdateInput(c.Param("userId"), payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Delete /v1/users/:userId
// Delete an account profile
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if err := api.service.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
