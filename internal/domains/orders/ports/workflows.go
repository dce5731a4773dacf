package ports

import "context"

// FulfillmentOrchestrator advances a committed order through its
// post-creation statuses. Starting fulfillment is best-effort: a failure
// here never fails the creation itself.
type FulfillmentOrchestrator interface {
	StartFulfillment(ctx context.Context, orderID string) error
}
