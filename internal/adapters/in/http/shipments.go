package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// shipmentStep serves the admin shipment endpoints that take no body.
func (s *Server) shipmentStep(handler ShipmentHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		o, err := s.lookup(c)
		if err != nil {
			return s.fail(c, err)
		}

		cmd, err := commands.NewShipmentCommand(o.ID())
		if err != nil {
			return s.fail(c, err)
		}
		updated, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, newOrderResponse(updated))
	}
}

// AssignAWB handles POST /api/v1/admin/orders/:ref/awb. The body is optional.
func (s *Server) AssignAWB(c echo.Context) error {
	var req AssignAWBRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}

	o, err := s.lookup(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignAWBCommand(o.ID(), req.CourierID)
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.h.AssignAWB.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(updated))
}

// TrackShipment handles GET /api/v1/admin/shipments/:awb/track.
func (s *Server) TrackShipment(c echo.Context) error {
	var awb string
	if err := bindPathParam(c, "awb", &awb); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewTrackShipmentQuery(awb)
	if err != nil {
		return s.fail(c, err)
	}
	tracking, err := s.h.TrackShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newTrackingResponse(tracking))
}
