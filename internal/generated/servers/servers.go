// Package servers holds the wire types, the ServerInterface and the echo
// routing for the order API described by openapi.yml. It is maintained by hand
// and kept in the shape oapi-codegen emits so handlers stay generator-compatible.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Defines values for OrderStatus.
const (
	CANCELLED         OrderStatus = "CANCELLED"
	CONFIRMED         OrderStatus = "CONFIRMED"
	DELIVERED         OrderStatus = "DELIVERED"
	FAILED            OrderStatus = "FAILED"
	PAID              OrderStatus = "PAID"
	PAYMENTPROCESSING OrderStatus = "PAYMENT_PROCESSING"
	PENDING           OrderStatus = "PENDING"
	SHIPPED           OrderStatus = "SHIPPED"
)

// Amount defines model for Amount.
type Amount = string

// CancelOrder defines model for CancelOrder.
type CancelOrder struct {
	Reason *string `json:"reason,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerId string         `json:"customerId"`
	Items      []NewOrderItem `json:"items"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	Currency    string `json:"currency"`
	ProductId   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Amount `json:"unitPrice"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt  time.Time   `json:"createdAt"`
	Currency   string      `json:"currency"`
	CustomerId string      `json:"customerId"`
	Id         string      `json:"id"`
	Items      []OrderItem `json:"items"`
	Status     OrderStatus `json:"status"`
	Total      Amount      `json:"total"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// OrderCreated defines model for OrderCreated.
type OrderCreated struct {
	Id string `json:"id"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Currency    string `json:"currency"`
	ProductId   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Subtotal    Amount `json:"subtotal"`
	UnitPrice   Amount `json:"unitPrice"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// OrderStatusChanged defines model for OrderStatusChanged.
type OrderStatusChanged struct {
	Id     string      `json:"id"`
	Status OrderStatus `json:"status"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	CreatedAt  time.Time   `json:"createdAt"`
	Currency   string      `json:"currency"`
	CustomerId string      `json:"customerId"`
	Id         string      `json:"id"`
	ItemCount  int         `json:"itemCount"`
	Status     OrderStatus `json:"status"`
	Total      Amount      `json:"total"`
}

// OrderId defines model for OrderId.
type OrderId = string

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status []OrderStatus `form:"status" json:"status"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = CancelOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders by status
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// Create an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Get an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Cancel an order before payment
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// Confirm a pending order
	// (POST /api/v1/orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId OrderId) error
	// Mark a shipped order as delivered
	// (POST /api/v1/orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderId OrderId) error
	// Mark payment as failed
	// (POST /api/v1/orders/{orderId}/fail)
	FailOrder(ctx echo.Context, orderId OrderId) error
	// Mark an order as paid
	// (POST /api/v1/orders/{orderId}/pay)
	MarkOrderPaid(ctx echo.Context, orderId OrderId) error
	// Ship a paid order
	// (POST /api/v1/orders/{orderId}/ship)
	ShipOrder(ctx echo.Context, orderId OrderId) error
	// Start payment processing
	// (POST /api/v1/orders/{orderId}/start-payment)
	StartOrderPayment(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetOrdersParams
	// ------------- Required query parameter "status" -------------

	err = runtime.BindQueryParameter("form", false, true, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrders(ctx, params)
	return err
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateOrder(ctx)
	return err
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, orderId)
	return err
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CancelOrder(ctx, orderId)
	return err
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ConfirmOrder(ctx, orderId)
	return err
}

// DeliverOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.DeliverOrder(ctx, orderId)
	return err
}

// FailOrder converts echo context to params.
func (w *ServerInterfaceWrapper) FailOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.FailOrder(ctx, orderId)
	return err
}

// MarkOrderPaid converts echo context to params.
func (w *ServerInterfaceWrapper) MarkOrderPaid(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.MarkOrderPaid(ctx, orderId)
	return err
}

// ShipOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ShipOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ShipOrder(ctx, orderId)
	return err
}

// StartOrderPayment converts echo context to params.
func (w *ServerInterfaceWrapper) StartOrderPayment(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.StartOrderPayment(ctx, orderId)
	return err
}

func bindOrderId(ctx echo.Context) (OrderId, error) {
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/confirm", wrapper.ConfirmOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/deliver", wrapper.DeliverOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/fail", wrapper.FailOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/pay", wrapper.MarkOrderPaid)
	router.POST(baseURL+"/api/v1/orders/:orderId/ship", wrapper.ShipOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/start-payment", wrapper.StartOrderPayment)

}

//go:embed openapi.yml
var swaggerSpec []byte

// GetSwagger loads the embedded OpenAPI document, resolving external references.
func GetSwagger() (swagger *openapi3.T, err error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	swagger, err = loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
