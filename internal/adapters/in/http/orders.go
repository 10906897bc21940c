package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}

	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return s.fail(c, err)
	}

	in := commands.CheckoutInput{
		Items:         req.Items,
		Shipping:      req.Shipping,
		Billing:       req.Billing,
		PaymentMethod: method,
	}
	if req.GST != nil {
		in.GST = *req.GST
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), in)
	if err != nil {
		return s.fail(c, err)
	}

	placed, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(placed))
}

// GetOrder handles GET /api/v1/orders/:ref where ref is an order id or number.
func (s *Server) GetOrder(c echo.Context) error {
	o, err := s.lookup(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// ListOrders handles GET /api/v1/admin/orders?status=..&limit=..
func (s *Server) ListOrders(c echo.Context) error {
	var names []string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &names); err != nil {
		return s.badRequest(c, "Invalid status parameter")
	}
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return s.badRequest(c, "Invalid limit parameter")
	}

	var statuses []order.Status
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, err := order.ParseStatus(part)
			if err != nil {
				return s.fail(c, err)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(statuses, limit)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	out := make([]OrderSummaryResponse, len(rows))
	for i, row := range rows {
		out[i] = newOrderSummaryResponse(row)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:ref/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.lookup(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), status)
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(updated))
}

// lookup resolves the :ref path parameter to an order.
func (s *Server) lookup(c echo.Context) (*order.Order, error) {
	var ref string
	if err := bindPathParam(c, "ref", &ref); err != nil {
		return nil, err
	}
	query, err := queries.NewGetOrderQuery(ref)
	if err != nil {
		return nil, err
	}
	return s.h.GetOrder.Handle(c.Request().Context(), query)
}
