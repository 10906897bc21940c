package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingConfig holds the checkout pricing constants.
type PricingConfig struct {
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold int64
	FlatShippingFee       int64
	CODFee                int64
	// OnlineFeeRate applies to subtotal plus shipping for prepaid orders.
	OnlineFeeRate decimal.Decimal
	// OnlineFeeTaxRate is the tax charged on the online fee itself.
	OnlineFeeTaxRate decimal.Decimal
	// GSTRate is the product GST rate contained in unit prices.
	GSTRate decimal.Decimal
}

// DefaultPricingConfig returns the storefront defaults.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: 2000,
		FlatShippingFee:       150,
		CODFee:                25,
		OnlineFeeRate:         decimal.RequireFromString("0.02"),
		OnlineFeeTaxRate:      decimal.RequireFromString("0.18"),
		GSTRate:               decimal.RequireFromString("0.18"),
	}
}

func (c PricingConfig) Validate() error {
	var errList []error
	for _, v := range []struct {
		name  string
		value int64
	}{
		{"free shipping threshold", c.FreeShippingThreshold},
		{"flat shipping fee", c.FlatShippingFee},
		{"cod fee", c.CODFee},
	} {
		if v.value < 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(v.name, fmt.Errorf("%d is negative", v.value)))
		}
	}
	for _, r := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"online fee rate", c.OnlineFeeRate},
		{"online fee tax rate", c.OnlineFeeTaxRate},
		{"gst rate", c.GSTRate},
	} {
		if r.value.IsNegative() || r.value.GreaterThan(decimal.NewFromInt(1)) {
			errList = append(errList, errs.NewValueIsOutOfRangeError(r.name, r.value.String(), 0, 1))
		}
	}
	return errors.Join(errList...)
}

// PricingEngine quotes carts. It is a pure function of its configuration
// and inputs.
type PricingEngine struct {
	cfg PricingConfig
}

func NewPricingEngine(cfg PricingConfig) (*PricingEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PricingEngine{cfg: cfg}, nil
}

func (e *PricingEngine) Config() PricingConfig {
	return e.cfg
}

// Quote prices items for the given payment method:
//
//	subtotal       = Σ unit_price × quantity
//	shipping_fee   = 0 when subtotal >= threshold, flat fee otherwise
//	tax            = round(subtotal × rate / (1 + rate)), taxable_base = subtotal - tax
//	online_fee     = round((subtotal + shipping) × fee_rate), prepaid only
//	online_fee_tax = round(online_fee × fee_tax_rate), prepaid only
//	cod_surcharge  = flat COD fee, COD only
//	total          = subtotal + shipping + cod_surcharge + online_fee + online_fee_tax
func (e *PricingEngine) Quote(items []order.LineItem, method order.PaymentMethod) (order.Pricing, error) {
	if err := e.validateCart(items, method); err != nil {
		return order.Pricing{}, err
	}

	subtotal := order.Subtotal(items)

	var shippingFee int64
	if subtotal < e.cfg.FreeShippingThreshold {
		shippingFee = e.cfg.FlatShippingFee
	}

	tax, taxableBase := ExtractInclusiveTax(subtotal, e.cfg.GSTRate)
	baseBeforeFee := subtotal + shippingFee

	var codSurcharge, onlineFee, onlineFeeTax int64
	if method.IsCOD() {
		codSurcharge = e.cfg.CODFee
	} else {
		onlineFee = roundRupees(decimal.NewFromInt(baseBeforeFee).Mul(e.cfg.OnlineFeeRate))
		onlineFeeTax = roundRupees(decimal.NewFromInt(onlineFee).Mul(e.cfg.OnlineFeeTaxRate))
	}

	return order.Pricing{
		Subtotal:     subtotal,
		TaxableBase:  taxableBase,
		TaxAmount:    tax,
		ShippingFee:  shippingFee,
		CODSurcharge: codSurcharge,
		OnlineFee:    onlineFee,
		OnlineFeeTax: onlineFeeTax,
		Total:        baseBeforeFee + codSurcharge + onlineFee + onlineFeeTax,
	}, nil
}

func (e *PricingEngine) validateCart(items []order.LineItem, method order.PaymentMethod) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart items")
	}

	errList := []error{method.Validate()}
	for i, item := range items {
		if item.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("item %d quantity", i), fmt.Errorf("%d is not greater than 0", item.Quantity)))
		}
		if item.UnitPrice < 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("item %d unit price", i), fmt.Errorf("%d is negative", item.UnitPrice)))
		}
	}
	return errors.Join(errList...)
}

// ExtractInclusiveTax splits a GST-inclusive amount. The tax is rounded
// first and the base derived by subtraction so that base + tax == amount.
func ExtractInclusiveTax(amount int64, rate decimal.Decimal) (tax, taxableBase int64) {
	if amount == 0 || rate.IsZero() {
		return 0, amount
	}
	gross := decimal.NewFromInt(amount)
	tax = roundRupees(gross.Mul(rate).Div(decimal.NewFromInt(1).Add(rate)))
	return tax, amount - tax
}

func roundRupees(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
