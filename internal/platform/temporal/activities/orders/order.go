package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	ordersports "github.com/speira/ecommerce-api/internal/domains/orders/ports"
)

// UpdateOrderStatusActivityName advances an order's fulfillment status.
const UpdateOrderStatusActivityName = "orders.activities.UpdateOrderStatus"

// UpdateOrderStatusInput names the order and the status it should move to.
type UpdateOrderStatusInput struct {
	OrderID string
	Status  string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// UpdateOrderStatus moves an order to the requested status through the
// regular update path.
func (a *Activities) UpdateOrderStatus(ctx context.Context, input UpdateOrderStatusInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order status activity not initialized", "orderId", input.OrderID)
		return errors.New("order status activity not initialized")
	}
	logger.Info("UpdateOrderStatus activity started", "orderId", input.OrderID, "status", input.Status)
	_, err := a.service.UpdateOrder(ctx, ordertypes.UpdateOrderInput{
		ID:     input.OrderID,
		Status: &input.Status,
	})
	if err != nil {
		logger.Error("UpdateOrderStatus activity failed", "orderId", input.OrderID, "status", input.Status, "error", err)
		return err
	}
	logger.Info("UpdateOrderStatus activity completed", "orderId", input.OrderID, "status", input.Status)
	return nil
}
