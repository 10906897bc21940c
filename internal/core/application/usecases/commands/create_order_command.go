package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places an order from a confirmed cart snapshot.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), CheckoutInput{
//	    Items:         items,
//	    Shipping:      shipping,
//	    Billing:       billing,
//	    PaymentMethod: order.PaymentCOD,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	items         []order.LineItem
	shipping      order.Address
	billing       order.Address
	paymentMethod order.PaymentMethod
	gst           order.GSTRequest

	guard guard.ConstructorGuard
}

// CheckoutInput is the cart snapshot handed over by the checkout flow.
type CheckoutInput struct {
	Items         []order.LineItem
	Shipping      order.Address
	Billing       order.Address
	PaymentMethod order.PaymentMethod
	GST           order.GSTRequest
}

// NewCreateOrderCommand validates identity, items and payment method.
// Address sufficiency is decided by the handler, which may cross-fill.
func NewCreateOrderCommand(orderID kernel.UUID, in CheckoutInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		shipping: in.Shipping,
		billing:  in.Billing,
		gst:      in.GST,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(in.Items),
		cmd.setPaymentMethod(in.PaymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID               { return c.orderID }
func (c CreateOrderCommand) Shipping() order.Address            { return c.shipping }
func (c CreateOrderCommand) Billing() order.Address             { return c.billing }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CreateOrderCommand) GST() order.GSTRequest              { return c.gst }

func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var errList []error
	for _, item := range items {
		errList = append(errList, item.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(m order.PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}
