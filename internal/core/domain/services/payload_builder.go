package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/normalize"

	"github.com/shopspring/decimal"
)

const (
	DefaultHSN      = "851762"
	DefaultGSTRate  = 18
	OrderDateFormat = "2006-01-02 15:04"
)

// PayloadConfig carries the carrier account settings and parcel defaults
// used by PayloadBuilder.
type PayloadConfig struct {
	PickupLocation string
	ChannelID      string
	Country        string

	LengthCM  float64
	BreadthCM float64
	HeightCM  float64

	BaseWeightKG  float64
	WeightPerUnit float64
}

func DefaultPayloadConfig() PayloadConfig {
	return PayloadConfig{
		PickupLocation: "Primary",
		Country:        "India",
		LengthCM:       10,
		BreadthCM:      10,
		HeightCM:       10,
		BaseWeightKG:   0.5,
		WeightPerUnit:  0.1,
	}
}

// PayloadBuilder projects an order into the carrier creation schema.
type PayloadBuilder struct {
	cfg PayloadConfig
}

func NewPayloadBuilder(cfg PayloadConfig) PayloadBuilder {
	if cfg.Country == "" {
		cfg.Country = "India"
	}
	return PayloadBuilder{cfg: cfg}
}

// Build maps o onto the carrier schema. It never fails on bad data; the
// result must go through ValidatePayload before it is sent.
func (b PayloadBuilder) Build(o *order.Order) (shipment.CarrierPayload, error) {
	if err := o.Validate(); err != nil {
		return shipment.CarrierPayload{}, err
	}

	pricing := o.Pricing()
	deliverTo := o.ShippingAddress()

	p := shipment.CarrierPayload{
		OrderID:           o.Number(),
		OrderDate:         o.CreatedAt().Format(OrderDateFormat),
		PickupLocation:    b.cfg.PickupLocation,
		ChannelID:         b.cfg.ChannelID,
		ShippingIsBilling: true,
		PaymentMethod:     carrierPaymentMethod(o.PaymentMethod()),

		SubTotal:           pricing.Subtotal,
		ShippingCharges:    pricing.ShippingFee,
		TransactionCharges: pricing.CODSurcharge + pricing.OnlineFee + pricing.OnlineFeeTax,
		DeclaredValue:      pricing.TaxableBase + pricing.TaxAmount,

		Length:  b.cfg.LengthCM,
		Breadth: b.cfg.BreadthCM,
		Height:  b.cfg.HeightCM,
		Weight:  b.weight(o.TotalUnits()),
	}

	// The carrier delivers to the billing block when shipping_is_billing is
	// set, so it carries the deliver-to address.
	first, last := SplitName(deliverTo.Name)
	line1, line2 := normalize.EnsureMinimumAddress(
		normalize.CollapseSpaces(deliverTo.Line1), normalize.CollapseSpaces(deliverTo.Line2), deliverTo.City)
	p.BillingCustomerName = first
	p.BillingLastName = last
	p.BillingAddress = line1
	p.BillingAddress2 = line2
	p.BillingCity = strings.TrimSpace(deliverTo.City)
	p.BillingPincode = normalize.DigitsOnly(deliverTo.Postcode)
	p.BillingState = strings.TrimSpace(deliverTo.State)
	p.BillingCountry = b.cfg.Country
	p.BillingEmail = strings.TrimSpace(deliverTo.Email)
	p.BillingPhone = normalize.NormalizePhone10(deliverTo.Phone)

	p.ShippingCustomerName = first
	p.ShippingLastName = last
	p.ShippingAddress, p.ShippingAddress2 = normalize.EnsureMinimumAddress(
		normalize.CollapseSpaces(deliverTo.Line1), normalize.CollapseSpaces(deliverTo.Line2), "")
	if !normalize.IsSufficientAddress(p.ShippingAddress, p.ShippingAddress2) ||
		p.ShippingAddress == normalize.AddressPlaceholder {
		p.ShippingAddress, p.ShippingAddress2 = p.BillingAddress, p.BillingAddress2
	}
	p.ShippingCity = p.BillingCity
	p.ShippingPincode = p.BillingPincode
	p.ShippingState = p.BillingState
	p.ShippingCountry = p.BillingCountry
	p.ShippingEmail = p.BillingEmail
	p.ShippingPhone = p.BillingPhone

	for _, item := range o.Items() {
		p.OrderItems = append(p.OrderItems, carrierItem(item))
	}

	return p, nil
}

func (b PayloadBuilder) weight(units int) float64 {
	extra := units - 1
	if extra < 0 {
		extra = 0
	}
	w := decimal.NewFromFloat(b.cfg.BaseWeightKG).
		Add(decimal.NewFromFloat(b.cfg.WeightPerUnit).Mul(decimal.NewFromInt(int64(extra))))
	return w.Round(2).InexactFloat64()
}

func carrierItem(item order.LineItem) shipment.CarrierItem {
	rate := item.GSTRate
	if rate <= 0 {
		rate = DefaultGSTRate
	}
	return shipment.CarrierItem{
		Name:         strings.TrimSpace(item.Name),
		SKU:          firstNonBlank(item.SKU, item.ProductSKU, item.ProductID),
		Units:        item.Quantity,
		SellingPrice: item.UnitPrice,
		Tax:          float64(rate),
		HSN:          firstNonBlank(item.HSN, DefaultHSN),
	}
}

func carrierPaymentMethod(m order.PaymentMethod) string {
	if m.IsCOD() {
		return shipment.PaymentCOD
	}
	return shipment.PaymentPrepaid
}

// SplitName splits a full name into the first whitespace-delimited token
// and the remainder.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
