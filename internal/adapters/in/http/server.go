// Package http exposes the checkout and admin use cases over echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type ShipmentHandler interface {
	Handle(ctx context.Context, cmd commands.ShipmentCommand) (*order.Order, error)
}

type AssignAWBHandler interface {
	Handle(ctx context.Context, cmd commands.AssignAWBCommand) (*order.Order, error)
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
}

type TrackShipmentHandler interface {
	Handle(ctx context.Context, query queries.TrackShipmentQuery) (ports.Tracking, error)
}

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	CreateShipment    ShipmentHandler
	AssignAWB         AssignAWBHandler
	RequestPickup     ShipmentHandler
	GenerateLabel     ShipmentHandler
	GenerateInvoice   ShipmentHandler
	GenerateManifest  ShipmentHandler
	UpdateOrderStatus UpdateOrderStatusHandler
	GetOrder          GetOrderHandler
	ListOrders        ListOrdersHandler
	TrackShipment     TrackShipmentHandler
}

func (h Handlers) validate() error {
	for name, handler := range map[string]any{
		"create order handler":        h.CreateOrder,
		"create shipment handler":     h.CreateShipment,
		"assign awb handler":          h.AssignAWB,
		"request pickup handler":      h.RequestPickup,
		"generate label handler":      h.GenerateLabel,
		"generate invoice handler":    h.GenerateInvoice,
		"generate manifest handler":   h.GenerateManifest,
		"update order status handler": h.UpdateOrderStatus,
		"get order handler":           h.GetOrder,
		"list orders handler":         h.ListOrders,
		"track shipment handler":      h.TrackShipment,
	} {
		if handler == nil {
			return errs.NewValueIsRequiredError(name)
		}
	}
	return nil
}

// Server adapts HTTP requests to commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) (*Server, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Server{h: h, logger: logger.With("component", "http_server")}, nil
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:ref", s.GetOrder)

	admin := v1.Group("/admin")
	admin.GET("/orders", s.ListOrders)
	admin.POST("/orders/:ref/shipment", s.shipmentStep(s.h.CreateShipment))
	admin.POST("/orders/:ref/awb", s.AssignAWB)
	admin.POST("/orders/:ref/pickup", s.shipmentStep(s.h.RequestPickup))
	admin.POST("/orders/:ref/label", s.shipmentStep(s.h.GenerateLabel))
	admin.POST("/orders/:ref/invoice", s.shipmentStep(s.h.GenerateInvoice))
	admin.POST("/orders/:ref/manifest", s.shipmentStep(s.h.GenerateManifest))
	admin.PATCH("/orders/:ref/status", s.UpdateOrderStatus)
	admin.GET("/shipments/:awb/track", s.TrackShipment)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
