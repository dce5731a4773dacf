package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/speira/ecommerce-api/internal/domains/orders/application"
	ordertypes "github.com/speira/ecommerce-api/internal/domains/orders/application/types"
	ordersports "github.com/speira/ecommerce-api/internal/domains/orders/ports"
)

const tracerName = "github.com/speira/ecommerce-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*ordertypes.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", input.UserID),
			attribute.Int("order.item_count", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("userId", input.UserID), slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		if errors.Is(err, application.ErrOrderConflict) {
			s.metrics.recordConflict(ctx)
		}
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("userId", input.UserID))
	}
	s.metrics.recordCreated(ctx)
	span.SetAttributes(attribute.String("order.id", result.Order.ID))
	s.logInfo(ctx, "order created",
		slog.String("orderId", result.Order.ID),
		slog.String("status", string(result.Order.Status)))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*ordertypes.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrderByID",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("orderId", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, input ordertypes.ListOrdersInput) (*ordertypes.OrdersPage, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders",
		trace.WithAttributes(attribute.Int("page.limit", input.Limit)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("page.size", len(result.Orders)))
	return result, nil
}

func (s *Service) GetOrdersByUser(ctx context.Context, input ordertypes.OrdersByUserInput) (*ordertypes.OrdersPage, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrdersByUser",
		trace.WithAttributes(attribute.String("order.user_id", input.UserID)))
	defer span.End()

	result, err := s.inner.GetOrdersByUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user orders", slog.String("userId", input.UserID))
	}
	span.SetAttributes(attribute.Int("page.size", len(result.Orders)))
	return result, nil
}

func (s *Service) UpdateOrder(ctx context.Context, input ordertypes.UpdateOrderInput) (*ordertypes.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateOrder",
		trace.WithAttributes(attribute.String("order.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("orderId", input.ID))
	result, err := s.inner.UpdateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("orderId", input.ID))
	}
	s.logInfo(ctx, "order updated",
		slog.String("orderId", result.Order.ID),
		slog.String("status", string(result.Order.Status)))
	return result, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.DeleteOrder",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("orderId", id))
	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("orderId", id))
	}
	s.logInfo(ctx, "order deleted", slog.String("orderId", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated  metric.Int64Counter
	orderConflicts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders committed"))
	orderConflicts, _ := m.Int64Counter("orders.service.conflicts", metric.WithDescription("Number of create submissions lost to a concurrent commit"))
	return serviceMetrics{ordersCreated: ordersCreated, orderConflicts: orderConflicts}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordConflict(ctx context.Context) {
	if m.orderConflicts != nil {
		m.orderConflicts.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
