package ecommerceserver

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/speira/ecommerce-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	ordersports "github.com/speira/ecommerce-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service
// and the fulfillment orchestrator.
type OrderAPI struct {
	service     ordersports.Service
	fulfillment ordersports.FulfillmentOrchestrator
	logger      *slog.Logger
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, fulfillment ordersports.FulfillmentOrchestrator, logger *slog.Logger) OrderAPI {
	return OrderAPI{service: service, fulfillment: fulfillment, logger: logger}
}

// Post /v1/orders
// Create an order, deduplicated on the client idempotency key
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	projection, err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	api.startFulfillment(c, projection.Order.ID)
	c.JSON(http.StatusCreated, orderhttpmapper.FromProjection(projection))
}

// startFulfillment is best-effort: the order is committed either way,
// and a restart on an existing workflow id is idempotent.
func (api *OrderAPI) startFulfillment(c *gin.Context, orderID string) {
	if api.fulfillment == nil {
		return
	}
	if err := api.fulfillment.StartFulfillment(c.Request.Context(), orderID); err != nil && api.logger != nil {
		api.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "failed to start fulfillment",
			slog.String("orderId", orderID), slog.String("error", err.Error()))
	}
}

// Get /v1/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	projection, err := api.service.GetOrderByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjection(projection))
}

// Get /v1/orders
// List orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	input := ordertypes.ListOrdersInput{
		Limit:     parseLimit(c),
		NextToken: c.Query("nextToken"),
	}
	page, err := api.service.ListOrders(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromPage(page))
}

// Get /v1/users/:userId/orders
// List a user's orders, most recent first
func (api *OrderAPI) GetOrdersByUser(c *gin.Context) {
	input := ordertypes.OrdersByUserInput{
		UserID:    c.Param("userId"),
		Limit:     parseLimit(c),
		NextToken: c.Query("nextToken"),
	}
	page, err := api.service.GetOrdersByUser(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromPage(page))
}

// Put /v1/orders/:orderId
// Update an existing order
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	var payload orderhttpmapper.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	projection, err := api.service.UpdateOrder(c.Request.Context(), orderhttpmapper.ToUpdateInput(c.Param("orderId"), payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjection(projection))
}

// Delete /v1/orders/:orderId
// Delete an order
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	if err := api.service.DeleteOrder(c.Request.Context(), c.Param("orderId")); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseLimit(c *gin.Context) int {
	value := c.Query("limit")
	if value == "" {
		return 0
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
