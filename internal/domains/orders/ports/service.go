package ports

import (
	"context"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
)

// Service defines the orders use cases exposed to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*ordertypes.OrderProjection, error)
	GetOrderByID(ctx context.Context, id string) (*ordertypes.OrderProjection, error)
	ListOrders(ctx context.Context, input ordertypes.ListOrdersInput) (*ordertypes.OrdersPage, error)
	GetOrdersByUser(ctx context.Context, input ordertypes.OrdersByUserInput) (*ordertypes.OrdersPage, error)
	UpdateOrder(ctx context.Context, input ordertypes.UpdateOrderInput) (*ordertypes.OrderProjection, error)
	DeleteOrder(ctx context.Context, id string) error
}
