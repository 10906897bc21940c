package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// GenerateLabelCommandHandler fetches the shipping label URL.
type GenerateLabelCommandHandler struct {
	step    shipmentStep
	carrier ports.CarrierClient
}

func NewGenerateLabelCommandHandler(
	uowFactory OrderUoWFactory, carrier ports.CarrierClient, settings ShipmentSettings, logger *slog.Logger,
) GenerateLabelCommandHandler {
	return GenerateLabelCommandHandler{
		step:    newShipmentStep(uowFactory, settings, logger.With("component", "generate_label_handler")),
		carrier: carrier,
	}
}

func (h GenerateLabelCommandHandler) Handle(ctx context.Context, cmd ShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.step.run(ctx, cmd.OrderID(), "generate label", func(ctx context.Context, o *order.Order) (shipment.Patch, error) {
		current := o.Shipment()
		if err := current.ValidateDocuments(); err != nil {
			return shipment.Patch{}, err
		}

		res, err := h.carrier.GenerateLabel(ctx, ports.RefOf(current))
		if err != nil {
			return shipment.Patch{}, err
		}
		if res.URL == "" {
			return shipment.Patch{}, ports.NewCarrierLogicalError("generate label", "label_url")
		}
		return current.AttachLabel(res.URL)
	})
}

// GenerateInvoiceCommandHandler fetches the carrier invoice URL. The carrier
// needs its order id for this, so a shipment created without one is a state
// error and nothing is sent.
type GenerateInvoiceCommandHandler struct {
	step    shipmentStep
	carrier ports.CarrierClient
}

func NewGenerateInvoiceCommandHandler(
	uowFactory OrderUoWFactory, carrier ports.CarrierClient, settings ShipmentSettings, logger *slog.Logger,
) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{
		step:    newShipmentStep(uowFactory, settings, logger.With("component", "generate_invoice_handler")),
		carrier: carrier,
	}
}

func (h GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd ShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.step.run(ctx, cmd.OrderID(), "print invoice", func(ctx context.Context, o *order.Order) (shipment.Patch, error) {
		current := o.Shipment()
		if err := current.ValidateOrderDocuments(); err != nil {
			return shipment.Patch{}, err
		}

		res, err := h.carrier.PrintInvoice(ctx, ports.RefOf(current))
		if err != nil {
			return shipment.Patch{}, err
		}
		if res.URL == "" {
			return shipment.Patch{}, ports.NewCarrierLogicalError("print invoice", "invoice_url")
		}
		return current.AttachInvoice(res.URL)
	})
}

// GenerateManifestCommandHandler generates the pickup manifest and then
// prints it. Printing needs the carrier order id, which is checked before
// either call. Only the printed manifest URL is kept. A manifest the carrier
// reports as already generated is printed again.
type GenerateManifestCommandHandler struct {
	step    shipmentStep
	carrier ports.CarrierClient
}

func NewGenerateManifestCommandHandler(
	uowFactory OrderUoWFactory, carrier ports.CarrierClient, settings ShipmentSettings, logger *slog.Logger,
) GenerateManifestCommandHandler {
	return GenerateManifestCommandHandler{
		step:    newShipmentStep(uowFactory, settings, logger.With("component", "generate_manifest_handler")),
		carrier: carrier,
	}
}

func (h GenerateManifestCommandHandler) Handle(ctx context.Context, cmd ShipmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.step.run(ctx, cmd.OrderID(), "generate manifest", func(ctx context.Context, o *order.Order) (shipment.Patch, error) {
		current := o.Shipment()
		if err := current.ValidateOrderDocuments(); err != nil {
			return shipment.Patch{}, err
		}

		ref := ports.RefOf(current)
		if err := h.carrier.GenerateManifest(ctx, ref); err != nil && !manifestAlreadyGenerated(err) {
			return shipment.Patch{}, err
		}

		res, err := h.carrier.PrintManifest(ctx, ref)
		if err != nil {
			return shipment.Patch{}, err
		}
		if res.URL == "" {
			return shipment.Patch{}, ports.NewCarrierLogicalError("print manifest", "manifest_url")
		}
		return current.AttachManifest(res.URL)
	})
}

func manifestAlreadyGenerated(err error) bool {
	var carrierErr *ports.CarrierError
	return errors.As(err, &carrierErr) &&
		carrierErr.Kind == ports.CarrierRejected &&
		strings.Contains(strings.ToLower(carrierErr.Message), "already")
}
