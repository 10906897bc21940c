package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail writes the error response for err.
func (s *Server) fail(c echo.Context, err error) error {
	resp := errorResponseFor(err)

	switch {
	case resp.Code == http.StatusBadGateway:
		s.logger.WarnContext(c.Request().Context(), "carrier call failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	case resp.Code >= http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	return c.JSON(resp.Code, resp)
}

func (s *Server) badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}

// errorResponseFor maps the error taxonomy to a status code. Carrier errors
// are checked first because they wrap the transport cause.
func errorResponseFor(err error) ErrorResponse {
	var (
		carrierErr    *ports.CarrierError
		validationErr *errs.ValidationFailedError
		addressErr    *order.AddressIsInsufficientError
	)

	switch {
	case errors.As(err, &carrierErr):
		return ErrorResponse{
			Code:          http.StatusBadGateway,
			Message:       carrierErr.UserMessage(),
			CarrierStatus: carrierErr.StatusCode,
		}
	case errors.As(err, &validationErr):
		return ErrorResponse{
			Code:       http.StatusUnprocessableEntity,
			Message:    "Validation failed: " + validationErr.Subject,
			Violations: validationErr.Violations,
		}
	case errors.As(err, &addressErr):
		return ErrorResponse{
			Code:     http.StatusUnprocessableEntity,
			Message:  "Shipping and billing addresses are both insufficient",
			Shipping: &addressErr.Shipping,
			Billing:  &addressErr.Billing,
		}
	case errors.Is(err, services.ErrNoCourierAvailable):
		return ErrorResponse{Code: http.StatusUnprocessableEntity, Message: err.Error()}
	case errors.Is(err, ports.ErrInsufficientStock),
		errors.Is(err, ports.ErrShipmentBusy),
		errors.Is(err, ports.ErrOrderNumberTaken),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrStateIsInvalid):
		return ErrorResponse{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return ErrorResponse{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ErrorResponse{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return ErrorResponse{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}
