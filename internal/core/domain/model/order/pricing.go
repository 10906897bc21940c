package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Pricing is the immutable price breakdown computed at checkout. All
// amounts are whole rupees. Subtotal is GST-inclusive and splits into
// TaxableBase plus TaxAmount.
type Pricing struct {
	Subtotal     int64 `json:"subtotal"`
	TaxableBase  int64 `json:"taxable_base"`
	TaxAmount    int64 `json:"tax_amount"`
	ShippingFee  int64 `json:"shipping_fee"`
	CODSurcharge int64 `json:"cod_surcharge"`
	OnlineFee    int64 `json:"online_fee"`
	OnlineFeeTax int64 `json:"online_fee_tax"`
	Total        int64 `json:"total"`
}

// ValidateFor checks the arithmetic invariants and that only the charges
// belonging to the payment method are present.
func (p Pricing) ValidateFor(method PaymentMethod) error {
	var errList []error

	for _, c := range []struct {
		name  string
		value int64
	}{
		{"subtotal", p.Subtotal}, {"taxable base", p.TaxableBase}, {"tax amount", p.TaxAmount},
		{"shipping fee", p.ShippingFee}, {"cod surcharge", p.CODSurcharge},
		{"online fee", p.OnlineFee}, {"online fee tax", p.OnlineFeeTax}, {"total", p.Total},
	} {
		if c.value < 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(c.name, fmt.Errorf("%d is negative", c.value)))
		}
	}

	if p.TaxableBase+p.TaxAmount != p.Subtotal {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("taxable base %d + tax %d != subtotal %d", p.TaxableBase, p.TaxAmount, p.Subtotal)))
	}
	if sum := p.Subtotal + p.ShippingFee + p.CODSurcharge + p.OnlineFee + p.OnlineFeeTax; sum != p.Total {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("components add up to %d, total is %d", sum, p.Total)))
	}

	if method.IsCOD() && (p.OnlineFee != 0 || p.OnlineFeeTax != 0) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pricing",
			errors.New("cod order carries an online fee")))
	}
	if !method.IsCOD() && p.CODSurcharge != 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pricing",
			errors.New("online order carries a cod surcharge")))
	}

	return errors.Join(errList...)
}
