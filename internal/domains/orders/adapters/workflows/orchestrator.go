// Package workflows adapts the fulfillment port onto Temporal. The
// orchestrator only starts the workflow; the worker process owns its
// execution.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	orderworkflows "github.com/speira/ecommerce-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.FulfillmentOrchestrator = (*TemporalFulfillment)(nil)
	_ ports.FulfillmentOrchestrator = (*NoopFulfillment)(nil)
)

// TemporalFulfillment starts order fulfillment workflows on a Temporal
// cluster.
type TemporalFulfillment struct {
	client    client.Client
	taskQueue string
}

// NewTemporalFulfillment wires a Temporal client into the orchestrator.
func NewTemporalFulfillment(c client.Client) *TemporalFulfillment {
	return &TemporalFulfillment{client: c, taskQueue: orderworkflows.OrderFulfillmentTaskQueue}
}

// StartFulfillment fires the fulfillment workflow for a committed order.
// The workflow id is derived from the order id, so a retried start after
// a crash lands on the running execution and reports success.
func (o *TemporalFulfillment) StartFulfillment(ctx context.Context, orderID string) error {
	if o == nil || o.client == nil {
		return errors.New("temporal fulfillment not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        buildFulfillmentWorkflowID(orderID),
		TaskQueue: o.taskQueue,
	}
	input := orderworkflows.OrderFulfillmentWorkflowInput{
		OrderID: orderID,
		TraceID: workflowTraceID(ctx),
	}
	// Started by registered name: the worker registers the workflow under
	// an alias, so a function reference would not resolve on the cluster.
	_, err := o.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderFulfillmentWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// NoopFulfillment satisfies the port when Temporal is disabled. Orders
// then stay PENDING until something else advances them.
type NoopFulfillment struct {
	logger *slog.Logger
}

func NewNoopFulfillment(logger *slog.Logger) *NoopFulfillment {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopFulfillment{logger: logger}
}

func (o *NoopFulfillment) StartFulfillment(ctx context.Context, orderID string) error {
	o.logger.LogAttrs(ctx, slog.LevelDebug, "fulfillment disabled; order left pending",
		slog.String("orderId", orderID))
	return nil
}

func buildFulfillmentWorkflowID(orderID string) string {
	return fmt.Sprintf("order-fulfillment-%s", orderID)
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
