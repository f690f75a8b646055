package http

import (
	"context"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.OrderID, error)
}

type changeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
}

type cancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

type getOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type getOrdersByStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.GetOrdersByStatusQueryResponse, error)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       createOrderHandler
	changeOrderStatusHandler changeOrderStatusHandler
	cancelOrderHandler       cancelOrderHandler

	// Query handlers
	getOrderHandler          getOrderHandler
	getOrdersByStatusHandler getOrdersByStatusHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler createOrderHandler,
	changeOrderStatusHandler changeOrderStatusHandler,
	cancelOrderHandler cancelOrderHandler,
	getOrderHandler getOrderHandler,
	getOrdersByStatusHandler getOrdersByStatusHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.CreateOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid unit price: " + item.UnitPrice,
			})
		}
		items = append(items, commands.CreateOrderItem{
			ProductID:   item.ProductId,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Currency:    item.Currency,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(body.CustomerId, items)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid order data")
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{Id: orderID.String()})
}

// GetOrders handles GET /api/v1/orders?status=... - lists orders in the given statuses.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	statuses := make([]order.Status, 0, len(params.Status))
	for _, value := range params.Status {
		status, err := order.ParseStatus(string(value))
		if err != nil {
			return s.errorResponse(ctx, err, "Invalid status")
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewGetOrdersByStatusQuery(statuses...)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid status")
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = servers.OrderSummary{
			Id:         o.ID,
			CustomerId: o.CustomerID,
			Status:     servers.OrderStatus(o.Status),
			Total:      o.Total.StringFixed(2),
			Currency:   o.Currency,
			ItemCount:  o.ItemCount,
			CreatedAt:  o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.NewOrderID(orderId)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid order id")
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve order")
	}

	items := make([]servers.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = servers.OrderItem{
			ProductId:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
			Currency:    item.Currency,
		}
	}

	return ctx.JSON(http.StatusOK, servers.Order{
		Id:         o.ID,
		CustomerId: o.CustomerID,
		Status:     servers.OrderStatus(o.Status),
		Total:      o.Total.StringFixed(2),
		Currency:   o.Currency,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	})
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.changeStatus(ctx, orderId, commands.Confirm, order.Confirmed)
}

// StartOrderPayment handles POST /api/v1/orders/{orderId}/start-payment.
func (s *Server) StartOrderPayment(ctx echo.Context, orderId servers.OrderId) error {
	return s.changeStatus(ctx, orderId, commands.StartPayment, order.PaymentProcessing)
}

// MarkOrderPaid handles POST /api/v1/orders/{orderId}/pay.
func (s *Server) MarkOrderPaid(ctx echo.Context, orderId servers.OrderId) error {
	return s.changeStatus(ctx, orderId, commands.MarkPaid, order.Paid)
}

// ShipOrder handles POST /api/v1/orders/{orderId}/ship.
func (s *Server) ShipOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.changeStatus(ctx, orderId, commands.Ship, order.Shipped)
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.changeStatus(ctx, orderId, commands.Deliver, order.Delivered)
}

// FailOrder handles POST /api/v1/orders/{orderId}/fail.
func (s *Server) FailOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.changeStatus(ctx, orderId, commands.MarkFailed, order.Failed)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.NewOrderID(orderId)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid order id")
	}

	var body servers.CancelOrderJSONRequestBody
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&body); err != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}
	}

	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}

	cmd, err := commands.NewCancelOrderCommand(id, reason)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid cancel request")
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err, "Failed to cancel order")
	}

	return ctx.JSON(http.StatusOK, servers.OrderStatusChanged{
		Id:     id.String(),
		Status: servers.OrderStatus(order.Cancelled.String()),
	})
}

func (s *Server) changeStatus(
	ctx echo.Context,
	orderId servers.OrderId,
	transition commands.Transition,
	target order.Status,
) error {
	id, err := kernel.NewOrderID(orderId)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid order id")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, transition)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid status change")
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err, "Failed to "+transition.String()+" order")
	}

	return ctx.JSON(http.StatusOK, servers.OrderStatusChanged{
		Id:     id.String(),
		Status: servers.OrderStatus(target.String()),
	})
}
