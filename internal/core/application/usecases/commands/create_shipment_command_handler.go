package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateShipmentCommandHandler registers the order with the carrier and
// moves its shipment from None to OrderCreated.
//
// The attempt is recorded before the payload is built, so an order whose
// create call failed, timed out or was rejected locally is never resent by
// the background sweep. Only an explicit call to this handler retries it.
//
// Example:
//
//	cmd, _ := NewShipmentCommand(orderID)
//	o, err := handler.Handle(ctx, cmd)
//	var violations *errs.ValidationFailedError
//	if errors.As(err, &violations) {
//	    // payload rejected locally, nothing was sent
//	}
type CreateShipmentCommandHandler struct {
	step       shipmentStep
	uowFactory OrderUoWFactory
	carrier    ports.CarrierClient
	builder    services.PayloadBuilder
	now        func() time.Time
}

func NewCreateShipmentCommandHandler(
	uowFactory OrderUoWFactory,
	carrier ports.CarrierClient,
	builder services.PayloadBuilder,
	settings ShipmentSettings,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		step:       newShipmentStep(uowFactory, settings, logger.With("component", "create_shipment_handler")),
		uowFactory: uowFactory,
		carrier:    carrier,
		builder:    builder,
		now:        time.Now,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd ShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.step.run(ctx, cmd.OrderID(), "create order", func(ctx context.Context, o *order.Order) (shipment.Patch, error) {
		current := o.Shipment()
		if err := current.ValidateCreate(); err != nil {
			return shipment.Patch{}, err
		}
		repo := h.uowFactory.Create().OrderRepository()
		if err := repo.MarkShipmentCreateAttempted(ctx, o.ID(), h.now()); err != nil {
			return shipment.Patch{}, err
		}

		payload, err := h.builder.Build(o)
		if err != nil {
			return shipment.Patch{}, err
		}
		if err = services.CheckPayload(payload); err != nil {
			return shipment.Patch{}, err
		}

		res, err := h.carrier.CreateOrder(ctx, payload)
		if err != nil {
			return shipment.Patch{}, err
		}
		if res.ShipmentID == "" {
			return shipment.Patch{}, ports.NewCarrierLogicalError("create order", "shipment_id")
		}

		return current.Create(res.ShipmentID, res.CarrierOrderID, res.Status)
	})
}
