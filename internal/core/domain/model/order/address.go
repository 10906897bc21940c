package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/normalize"
)

var ErrAddressIsInsufficient = errors.New("address is insufficient")

// Address is a postal address value object.
type Address struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Landmark string `json:"landmark,omitempty"`
}

// IsSufficient reports whether the street lines together have enough
// characters to be deliverable.
func (a Address) IsSufficient() bool {
	return normalize.IsSufficientAddress(a.Line1, a.Line2)
}

// AddressNote records a substitution made by ReconcileAddresses.
type AddressNote string

const (
	AddressNoteNone                AddressNote = ""
	AddressNoteShippingFromBilling AddressNote = "shipping address replaced by billing address"
	AddressNoteBillingFromShipping AddressNote = "billing address replaced by shipping address"
)

// AddressIsInsufficientError is returned when neither address is usable. It
// carries the raw input so the caller can show what was rejected.
type AddressIsInsufficientError struct {
	Shipping Address
	Billing  Address
}

func NewAddressIsInsufficientError(shipping, billing Address) *AddressIsInsufficientError {
	return &AddressIsInsufficientError{Shipping: shipping, Billing: billing}
}

func (e *AddressIsInsufficientError) Error() string {
	return fmt.Sprintf("%s: shipping %q and billing %q are both shorter than %d characters",
		ErrAddressIsInsufficient,
		e.Shipping.Line1+" "+e.Shipping.Line2,
		e.Billing.Line1+" "+e.Billing.Line2,
		normalize.MinimumAddressLength)
}

func (e *AddressIsInsufficientError) Unwrap() error {
	return ErrAddressIsInsufficient
}

// ReconcileAddresses makes both addresses sufficient by copying the usable
// one over the other. The whole address is copied, not only the street
// lines, so contact details always match the street they belong to.
func ReconcileAddresses(shipping, billing Address) (Address, Address, AddressNote, error) {
	shippingOK, billingOK := shipping.IsSufficient(), billing.IsSufficient()

	switch {
	case shippingOK && billingOK:
		return shipping, billing, AddressNoteNone, nil
	case billingOK:
		return billing, billing, AddressNoteShippingFromBilling, nil
	case shippingOK:
		return shipping, shipping, AddressNoteBillingFromShipping, nil
	default:
		return Address{}, Address{}, AddressNoteNone, NewAddressIsInsufficientError(shipping, billing)
	}
}
