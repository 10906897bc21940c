package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

const pickupRequestedTag = "PICKUP_REQUESTED"

// RequestPickupCommandHandler asks the carrier to collect an AWB-assigned
// shipment.
type RequestPickupCommandHandler struct {
	step    shipmentStep
	carrier ports.CarrierClient
	now     func() time.Time
}

func NewRequestPickupCommandHandler(
	uowFactory OrderUoWFactory,
	carrier ports.CarrierClient,
	settings ShipmentSettings,
	logger *slog.Logger,
) RequestPickupCommandHandler {
	return RequestPickupCommandHandler{
		step:    newShipmentStep(uowFactory, settings, logger.With("component", "request_pickup_handler")),
		carrier: carrier,
		now:     time.Now,
	}
}

func (h RequestPickupCommandHandler) Handle(ctx context.Context, cmd ShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.step.run(ctx, cmd.OrderID(), "generate pickup", func(ctx context.Context, o *order.Order) (shipment.Patch, error) {
		current := o.Shipment()
		if err := current.ValidateDocuments(); err != nil {
			return shipment.Patch{}, err
		}

		res, err := h.carrier.GeneratePickup(ctx, ports.RefOf(current))
		if err != nil {
			return shipment.Patch{}, err
		}

		tag := res.Status
		if tag == "" {
			tag = pickupRequestedTag
		}
		return current.RequestPickup(h.now(), tag)
	})
}
