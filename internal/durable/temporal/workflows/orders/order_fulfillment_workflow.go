package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/speira/ecommerce-api/internal/platform/temporal/activities/orders"
)

const (
	// OrderFulfillmentWorkflowName is the public identifier for registering the workflow.
	OrderFulfillmentWorkflowName = "orders.workflows.Fulfillment"
	// OrderFulfillmentTaskQueue is the queue consumed by the worker processing fulfillment.
	OrderFulfillmentTaskQueue = "ORDER_FULFILLMENT"
)

// Dwell times between status transitions. Short on purpose; real carrier
// integration would replace the timers with signals.
const (
	processingDelay = 10 * time.Second
	shippingDelay   = 30 * time.Second
	deliveryDelay   = time.Minute
)

// OrderFulfillmentWorkflowInput captures the payload needed to advance a
// committed order through fulfillment.
type OrderFulfillmentWorkflowInput struct {
	OrderID string
	TraceID string
}

// OrderFulfillmentWorkflow walks a committed order through
// PROCESSING, SHIPPED and DELIVERED. Each transition goes through the
// regular order-update path, so it is visible to reads immediately.
func OrderFulfillmentWorkflow(ctx workflow.Context, input OrderFulfillmentWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderFulfillmentWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	steps := []struct {
		delay  time.Duration
		status string
	}{
		{processingDelay, "PROCESSING"},
		{shippingDelay, "SHIPPED"},
		{deliveryDelay, "DELIVERED"},
	}
	for _, step := range steps {
		if err := workflow.Sleep(ctx, step.delay); err != nil {
			return err
		}
		update := orderactivities.UpdateOrderStatusInput{OrderID: input.OrderID, Status: step.status}
		if err := workflow.ExecuteActivity(ctx, orderactivities.UpdateOrderStatusActivityName, update).Get(ctx, nil); err != nil {
			logger.Error("OrderFulfillmentWorkflow failed",
				withTraceID(input.TraceID, "orderId", input.OrderID, "status", step.status, "error", err)...)
			return err
		}
		logger.Info("order status advanced", withTraceID(input.TraceID, "orderId", input.OrderID, "status", step.status)...)
	}

	logger.Info("OrderFulfillmentWorkflow completed", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
