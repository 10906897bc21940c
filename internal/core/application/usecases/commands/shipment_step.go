package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// ShipmentSettings bounds every shipment step.
type ShipmentSettings struct {
	// StepTimeout caps all carrier calls made by one step.
	StepTimeout time.Duration
	// LeaseTTL is how long a step may hold the order. It must exceed
	// StepTimeout so a lease never expires under a running step.
	LeaseTTL time.Duration
}

func DefaultShipmentSettings() ShipmentSettings {
	return ShipmentSettings{StepTimeout: 45 * time.Second, LeaseTTL: 2 * time.Minute}
}

func (s ShipmentSettings) Validate() error {
	if s.StepTimeout <= 0 {
		return errs.NewValueIsInvalidError("shipment step timeout")
	}
	if s.LeaseTTL <= s.StepTimeout {
		return errs.NewValueIsOutOfRangeError("shipment lease ttl", s.LeaseTTL, s.StepTimeout, "unbounded")
	}
	return nil
}

// stepFunc performs the carrier side of a step against a freshly loaded
// order and returns the fields to persist.
type stepFunc func(ctx context.Context, o *order.Order) (shipment.Patch, error)

// shipmentStep serializes shipment writers per order.
//
// A step runs as:
//   - acquire the order lease, ErrShipmentBusy if held
//   - reload the order so nothing is derived from caller state
//   - reject cancelled orders before any carrier call
//   - run the carrier calls under StepTimeout
//   - compare-and-swap the patch on the state seen at reload
//
// The lease is released on every failure path.
type shipmentStep struct {
	uowFactory OrderUoWFactory
	settings   ShipmentSettings
	logger     *slog.Logger
}

func newShipmentStep(uowFactory OrderUoWFactory, settings ShipmentSettings, logger *slog.Logger) shipmentStep {
	return shipmentStep{uowFactory: uowFactory, settings: settings, logger: logger}
}

func (s shipmentStep) run(ctx context.Context, orderID kernel.UUID, op string, fn stepFunc) (*order.Order, error) {
	repo := s.uowFactory.Create().OrderRepository()
	owner := op + ":" + kernel.NewUUID().String()

	if err := repo.AcquireShipmentLease(ctx, orderID, owner, s.settings.LeaseTTL); err != nil {
		return nil, err
	}

	// Persistence after the carrier answered must not be lost to a caller
	// that went away, so cleanup and the final write ignore ctx cancellation.
	persistCtx := context.WithoutCancel(ctx)
	release := func() {
		if err := repo.ReleaseShipmentLease(persistCtx, orderID, owner); err != nil {
			s.logger.ErrorContext(ctx, "Failed to release shipment lease",
				"order_id", orderID.String(), "op", op, "error", err)
		}
	}

	o, err := repo.Get(ctx, orderID)
	if err != nil {
		release()
		return nil, err
	}
	if err = o.EnsureShipmentMutable(); err != nil {
		release()
		return nil, err
	}

	expected := o.Shipment().State()

	stepCtx, cancel := context.WithTimeout(ctx, s.settings.StepTimeout)
	defer cancel()

	patch, err := fn(stepCtx, o)
	if err != nil {
		release()
		s.logger.WarnContext(ctx, "Shipment step failed",
			"order_number", o.Number(), "op", op, "error", err)
		return nil, err
	}

	if err = repo.SaveShipment(persistCtx, orderID, owner, expected, patch); err != nil {
		release()
		s.logger.ErrorContext(ctx, "Failed to persist shipment step",
			"order_number", o.Number(), "op", op, "error", err)
		return nil, err
	}

	o.ApplyShipment(patch)
	s.logger.InfoContext(ctx, "Shipment step completed",
		"order_number", o.Number(), "op", op, "state", o.Shipment().State().String())
	return o, nil
}
