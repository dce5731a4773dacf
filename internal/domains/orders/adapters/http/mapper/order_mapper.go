// Package mapper translates between the orders HTTP payloads and the
// application inputs and projections. Money crosses this boundary as
// two-decimal floats; everything behind it is integer cents.
package mapper

import (
	"time"

	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
)

// LineItem is one requested (product, quantity) pair in a submission.
type LineItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest captures an inbound order submission.
type CreateOrderRequest struct {
	IdempotencyKey  string     `json:"idempotencyKey" binding:"required"`
	UserID          string     `json:"userId" binding:"required"`
	Items           []LineItem `json:"items" binding:"required,min=1"`
	ShippingAddress string     `json:"shippingAddress" binding:"required"`
}

// UpdateOrderRequest is a partial order mutation; absent fields are left
// untouched.
type UpdateOrderRequest struct {
	Status          *string `json:"status,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
}

// ProductSnapshot mirrors the display fields captured at order time.
type ProductSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// OrderItem is the HTTP representation of one order line.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Total     float64         `json:"total"`
	Product   ProductSnapshot `json:"product"`
}

// OrderUser is the denormalized owner attached to enriched responses.
type OrderUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shippingAddress"`
	User            *OrderUser  `json:"user,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrdersPage is one page of orders plus the cursor for the next one.
type OrdersPage struct {
	Orders    []Order `json:"orders"`
	NextToken string  `json:"nextToken,omitempty"`
}

// ToCreateInput converts a submission into the application input.
func ToCreateInput(request CreateOrderRequest) ordertypes.CreateOrderInput {
	items := make([]ordertypes.LineItemInput, len(request.Items))
	for i, item := range request.Items {
		items[i] = ordertypes.LineItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return ordertypes.CreateOrderInput{
		IdempotencyKey:  request.IdempotencyKey,
		UserID:          request.UserID,
		Items:           items,
		ShippingAddress: request.ShippingAddress,
	}
}

// ToUpdateInput converts a partial mutation into the application input.
func ToUpdateInput(id string, request UpdateOrderRequest) ordertypes.UpdateOrderInput {
	return ordertypes.UpdateOrderInput{
		ID:              id,
		Status:          request.Status,
		ShippingAddress: request.ShippingAddress,
	}
}

// FromProjection maps an enriched order into its transport shape.
func FromProjection(projection *ordertypes.OrderProjection) Order {
	order := fromDomainOrder(projection.Order)
	if projection.User != nil {
		order.User = &OrderUser{
			ID:        projection.User.ID,
			Email:     projection.User.Email,
			FirstName: projection.User.FirstName,
			LastName:  projection.User.LastName,
		}
	}
	return order
}

// FromPage maps an application page into its transport shape.
func FromPage(page *ordertypes.OrdersPage) OrdersPage {
	orders := make([]Order, 0, len(page.Orders))
	for _, projection := range page.Orders {
		orders = append(orders, FromProjection(projection))
	}
	return OrdersPage{Orders: orders, NextToken: page.NextToken}
}

func fromDomainOrder(o *domain.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.Float(),
			Total:     item.Total.Float(),
			Product: ProductSnapshot{
				ID:       item.Product.ID,
				Name:     item.Product.Name,
				ImageURL: item.Product.ImageURL,
			},
		}
	}
	return Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Items:           items,
		Total:           o.Total.Float(),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
