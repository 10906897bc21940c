package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsCancelled is the cause attached when a cancelled order is asked
	// to progress its shipment.
	ErrOrderIsCancelled = errors.New("order is cancelled")
)

// Order is the aggregate root of the fulfillment core. It owns the purchase
// snapshot taken at checkout and the shipment progress recorded afterwards.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must have at least one valid line item
//   - Shipping and billing addresses are both sufficient
//   - Pricing components add up and match the payment method
//   - Status transitions follow the lifecycle in Status
//   - A cancelled order accepts no shipment transition
type Order struct {
	id     kernel.UUID
	number string

	items []LineItem

	shipping    Address
	billing     Address
	addressNote AddressNote

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	pricing Pricing
	gst     GSTDisclosure

	status   Status
	shipment shipment.Shipment

	createdAt time.Time

	isConstructed bool
}

// Details is the checkout snapshot an order is created from. Addresses are
// expected to have gone through ReconcileAddresses already.
type Details struct {
	Items         []LineItem
	Shipping      Address
	Billing       Address
	AddressNote   AddressNote
	PaymentMethod PaymentMethod
	Pricing       Pricing
	GST           GSTDisclosure
}

// NewOrder creates a Pending order.
//
// Parameters:
//   - id: unique identifier for the order
//   - number: human readable reference, see NewOrderNumber
//   - details: checkout snapshot
//   - createdAt: placement time
//
// Returns every violated invariant joined into one error.
func NewOrder(id kernel.UUID, number string, details Details, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: initialPaymentStatus(details.PaymentMethod),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries persisted order columns.
type RestoreParams struct {
	ID            kernel.UUID
	Number        string
	Details       Details
	Status        Status
	PaymentStatus PaymentStatus
	Shipment      shipment.Shipment
	CreatedAt     time.Time
}

// RestoreOrder rebuilds an order loaded from storage. It applies the same
// checks as NewOrder plus status validation.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		shipment:      p.Shipment,
		createdAt:     p.CreatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setDetails(p.Details),
		o.setStatus(p.Status),
		o.setPaymentStatus(p.PaymentStatus),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) ShippingAddress() Address     { return o.shipping }
func (o *Order) BillingAddress() Address      { return o.billing }
func (o *Order) AddressNote() AddressNote     { return o.addressNote }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Pricing() Pricing             { return o.pricing }
func (o *Order) GST() GSTDisclosure           { return o.gst }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Shipment() shipment.Shipment  { return o.shipment }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) TotalUnits() int              { return TotalUnits(o.items) }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ChangeStatus moves the order along its lifecycle. Delivering a COD order
// settles its payment.
func (o *Order) ChangeStatus(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	if next == Delivered && o.paymentMethod.IsCOD() {
		o.paymentStatus = PaymentPaid
	}
	return nil
}

// EnsureShipmentMutable rejects shipment transitions on a cancelled order.
// It must be checked before any carrier call is made.
func (o *Order) EnsureShipmentMutable() error {
	if o.status == Cancelled {
		return errs.NewStateIsInvalidErrorWithCause("order", o.status.String(), ErrOrderIsCancelled)
	}
	return nil
}

// ApplyShipment writes a persisted patch onto the in-memory shipment.
func (o *Order) ApplyShipment(patch shipment.Patch) {
	o.shipment = patch.Apply(o.shipment)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setDetails(d Details) error {
	var errList []error

	if len(d.Items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("line items"))
	}
	for i, item := range d.Items {
		if err := item.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("line item %d: %w", i, err))
		}
	}

	if !d.Shipping.IsSufficient() || !d.Billing.IsSufficient() {
		errList = append(errList, NewAddressIsInsufficientError(d.Shipping, d.Billing))
	}

	if err := d.PaymentMethod.Validate(); err != nil {
		errList = append(errList, err)
	} else if err := d.Pricing.ValidateFor(d.PaymentMethod); err != nil {
		errList = append(errList, err)
	}

	if len(d.Items) > 0 && Subtotal(d.Items) != d.Pricing.Subtotal {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("subtotal %d does not match line items %d", d.Pricing.Subtotal, Subtotal(d.Items))))
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.items = make([]LineItem, len(d.Items))
	copy(o.items, d.Items)
	o.shipping = d.Shipping
	o.billing = d.Billing
	o.addressNote = d.AddressNote
	o.paymentMethod = d.PaymentMethod
	o.pricing = d.Pricing
	o.gst = d.GST
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}
