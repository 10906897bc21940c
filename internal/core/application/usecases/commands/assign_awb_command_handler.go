package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AssignAWBCommandHandler obtains the airway bill for a created shipment.
//
// When no courier is given and the carrier refuses for lack of one, the
// handler asks serviceability for the route and retries exactly once with
// the recommended or first available courier. Any other failure, and any
// failure of the retry, is returned as is.
type AssignAWBCommandHandler struct {
	step           shipmentStep
	carrier        ports.CarrierClient
	builder        services.PayloadBuilder
	pickupPostcode string
	logger         *slog.Logger
}

func NewAssignAWBCommandHandler(
	uowFactory OrderUoWFactory,
	carrier ports.CarrierClient,
	builder services.PayloadBuilder,
	pickupPostcode string,
	settings ShipmentSettings,
	logger *slog.Logger,
) AssignAWBCommandHandler {
	logger = logger.With("component", "assign_awb_handler")
	return AssignAWBCommandHandler{
		step:           newShipmentStep(uowFactory, settings, logger),
		carrier:        carrier,
		builder:        builder,
		pickupPostcode: pickupPostcode,
		logger:         logger,
	}
}

func (h AssignAWBCommandHandler) Handle(ctx context.Context, cmd AssignAWBCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.step.run(ctx, cmd.OrderID(), "assign awb", func(ctx context.Context, o *order.Order) (shipment.Patch, error) {
		current := o.Shipment()
		if err := current.ValidateAssignAWB(); err != nil {
			return shipment.Patch{}, err
		}

		courierID := cmd.CourierID()
		courierName := ""

		res, err := h.carrier.AssignAWB(ctx, current.ShipmentID(), courierID)
		if err != nil {
			var carrierErr *ports.CarrierError
			if courierID != "" || !errors.As(err, &carrierErr) || !carrierErr.CourierRequired() {
				return shipment.Patch{}, err
			}

			selected, selectErr := h.fallbackCourier(ctx, o)
			if selectErr != nil {
				return shipment.Patch{}, fmt.Errorf("courier fallback: %w: %w", selectErr, err)
			}
			h.logger.InfoContext(ctx, "Retrying AWB assignment with fallback courier",
				"order_number", o.Number(), "courier_id", selected.ID, "courier_name", selected.Name)

			courierID, courierName = selected.ID, selected.Name
			if res, err = h.carrier.AssignAWB(ctx, current.ShipmentID(), courierID); err != nil {
				return shipment.Patch{}, err
			}
		}

		if res.AWB == "" {
			return shipment.Patch{}, ports.NewCarrierLogicalError("assign awb", "awb_code")
		}
		if res.CourierID == "" {
			res.CourierID = courierID
		}
		if res.CourierName == "" {
			res.CourierName = courierName
		}

		return current.AssignAWB(res.AWB, res.CourierName, res.CourierID, res.Status)
	})
}

func (h AssignAWBCommandHandler) fallbackCourier(ctx context.Context, o *order.Order) (services.CourierOption, error) {
	payload, err := h.builder.Build(o)
	if err != nil {
		return services.CourierOption{}, err
	}

	offer, err := h.carrier.CheckServiceability(ctx, ports.ServiceabilityRequest{
		PickupPostcode:   h.pickupPostcode,
		DeliveryPostcode: payload.BillingPincode,
		WeightKG:         payload.Weight,
		COD:              payload.IsCOD(),
		DeclaredValue:    payload.DeclaredValue,
	})
	if err != nil {
		return services.CourierOption{}, err
	}

	return services.SelectCourier(offer.RecommendedCourierID, offer.Couriers)
}
