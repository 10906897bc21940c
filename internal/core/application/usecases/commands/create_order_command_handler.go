package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler prices the cart, persists the order and
// reserves stock in one transaction. Carrier shipment creation is scheduled
// after commit and never blocks or fails checkout.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing, scheduler, logger)
//	placed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrInsufficientStock) {
//	    // nothing was persisted
//	}
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricing    *services.PricingEngine
	scheduler  ports.ShipmentScheduler
	now        func() time.Time
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	pricing *services.PricingEngine,
	scheduler ports.ShipmentScheduler,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		scheduler:  scheduler,
		now:        time.Now,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle places the order and returns it as persisted.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	shipping, billing, note, err := order.ReconcileAddresses(cmd.Shipping(), cmd.Billing())
	if err != nil {
		return nil, err
	}

	items := cmd.Items()
	pricing, err := h.pricing.Quote(items, cmd.PaymentMethod())
	if err != nil {
		return nil, err
	}

	now := h.now()
	placed, err := order.NewOrder(cmd.OrderID(), order.NewOrderNumber(now, cmd.OrderID()), order.Details{
		Items:         items,
		Shipping:      shipping,
		Billing:       billing,
		AddressNote:   note,
		PaymentMethod: cmd.PaymentMethod(),
		Pricing:       pricing,
		GST:           services.BuildGSTDisclosure(cmd.GST(), pricing),
	}, now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	stock := uow.StockRepository()
	for _, item := range items {
		if err = stock.Decrement(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if note != order.AddressNoteNone {
		h.logger.WarnContext(ctx, "Order address substituted",
			"order_number", placed.Number(), "note", string(note))
	}
	h.logger.InfoContext(ctx, "Order placed",
		"order_id", placed.ID().String(), "order_number", placed.Number(), "total", pricing.Total)

	h.scheduler.Schedule(placed.ID())
	return placed, nil
}
