package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// ParsePaymentMethod accepts the method name case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	if m != PaymentCOD && m != PaymentOnline {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not cod or online", string(m)))
	}
	return nil
}

func (m PaymentMethod) IsCOD() bool { return m == PaymentCOD }

// PaymentStatus tracks settlement. Online payments are resolved before an
// order is placed; COD settles on delivery.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not pending or paid", string(s)))
	}
	return nil
}

func initialPaymentStatus(m PaymentMethod) PaymentStatus {
	if m.IsCOD() {
		return PaymentPending
	}
	return PaymentPaid
}
