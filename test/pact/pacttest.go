//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "ecommerce-api"
	ConsumerName = "storefront-web"

	StateCatalogSeeded = "catalog and customer seeded"
	StateOrderExists   = "order order-301 exists"
	StateOrderMissing  = "no order with id order-404"
	StateStockDepleted = "product stock depleted"
)

const (
	ExistingOrderID = "order-301"
	MissingOrderID  = "order-404"

	CustomerID     = "user-501"
	CatalogProduct = "prod-101"
	DepletedStock  = 1
)

const (
	exampleIdempotencyKey = "4f9a7c02-1b7e-4c39-9f0a-6f3d2f1a8b11"
	exampleAddress        = "12 Main St, Springfield"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCreateOrderPayload provides stable request data for order interactions.
func ExampleCreateOrderPayload() map[string]any {
	return map[string]any{
		"idempotencyKey": exampleIdempotencyKey,
		"userId":         CustomerID,
		"items": []map[string]any{
			{"productId": CatalogProduct, "quantity": 2},
		},
		"shippingAddress": exampleAddress,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
