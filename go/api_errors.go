package ecommerceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/speira/ecommerce-api/internal/domains/orders/application"
	ordersports "github.com/speira/ecommerce-api/internal/domains/orders/ports"
	productsapp "github.com/speira/ecommerce-api/internal/domains/products/application"
	productsports "github.com/speira/ecommerce-api/internal/domains/products/ports"
	usersapp "github.com/speira/ecommerce-api/internal/domains/users/application"
	usersports "github.com/speira/ecommerce-api/internal/domains/users/ports"
	apierrors "github.com/speira/ecommerce-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError returns RFC 7807 responses for transport-level failures.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondOrderServiceError translates the orders error taxonomy onto
// HTTP statuses. Anything unrecognized is a transient failure and stays
// a 500 so clients know a retry may succeed.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var notFound *ordersapp.ProductNotFoundError
	if errors.As(err, &notFound) {
		respondProblem(c, apierrors.NewNotFoundProblem("product", notFound.ProductID))
		return
	}
	var understocked *ordersapp.InsufficientStockError
	if errors.As(err, &understocked) {
		respondProblem(c, apierrors.ErrValidation.
			WithDetail(understocked.Error()).
			WithExtension("productId", understocked.ProductID).
			WithExtension("available", understocked.Available).
			WithExtension("requested", understocked.Requested))
		return
	}
	switch {
	case errors.Is(err, ordersapp.ErrOrderConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrUserNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondProductServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, productsports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, productsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondUserServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, usersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, usersapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
