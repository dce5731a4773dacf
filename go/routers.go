package ecommerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context API handlers.
type ApiHandleFunctions struct {
	OrderAPI   OrderAPI
	ProductAPI ProductAPI
	UserAPI    UserAPI
}

// NewRouter returns a gin engine with all routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "CreateOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrderAPI.CreateOrder,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrderAPI.ListOrders,
		},
		{
			Name:        "GetOrderById",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.GetOrderById,
		},
		{
			Name:        "UpdateOrder",
			Method:      http.MethodPut,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.UpdateOrder,
		},
		{
			Name:        "DeleteOrder",
			Method:      http.MethodDelete,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.DeleteOrder,
		},
		{
			Name:        "GetOrdersByUser",
			Method:      http.MethodGet,
			Pattern:     "/v1/users/:userId/orders",
			HandlerFunc: handleFunctions.OrderAPI.GetOrdersByUser,
		},
		{
			Name:        "CreateProduct",
			Method:      http.MethodPost,
			Pattern:     "/v1/products",
			HandlerFunc: handleFunctions.ProductAPI.CreateProduct,
		},
		{
			Name:        "ListProducts",
			Method:      http.MethodGet,
			Pattern:     "/v1/products",
			HandlerFunc: handleFunctions.ProductAPI.ListProducts,
		},
		{
			Name:        "GetProductById",
			Method:      http.MethodGet,
			Pattern:     "/v1/products/:productId",
			HandlerFunc: handleFunctions.ProductAPI.GetProductById,
		},
		{
			Name:        "UpdateProduct",
			Method:      http.MethodPut,
			Pattern:     "/v1/products/:productId",
			HandlerFunc: handleFunctions.ProductAPI.UpdateProduct,
		},
		{
			Name:        "DeleteProduct",
			Method:      http.MethodDelete,
			Pattern:     "/v1/products/:productId",
			HandlerFunc: handleFunctions.ProductAPI.DeleteProduct,
		},
		{
			Name:        "CreateUser",
			Method:      http.MethodPost,
			Pattern:     "/v1/users",
			HandlerFunc: handleFunctions.UserAPI.CreateUser,
		},
		{
			Name:        "ListUsers",
			Method:      http.MethodGet,
			Pattern:     "/v1/users",
			HandlerFunc: handleFunctions.UserAPI.ListUsers,
		},
		{
			Name:        "GetUserById",
			Method:      http.MethodGet,
			Pattern:     "/v1/users/:userId",
			HandlerFunc: handleFunctions.UserAPI.GetUserById,
		},
		{
			Name:        "UpdateUser",
			Method:      http.MethodPut,
			Pattern:     "/v1/users/:userId",
			HandlerFunc: handleFunctions.UserAPI.UpdateUser,
		},
		{
			Name:        "DeleteUser",
			Method:      http.MethodDelete,
			Pattern:     "/v1/users/:userId",
			HandlerFunc: handleFunctions.UserAPI.DeleteUser,
		},
	}
}
