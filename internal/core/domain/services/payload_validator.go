package services

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/normalize"
)

// ValidatePayload returns every violation found in p, in a stable order.
// An empty result means the payload may be sent.
func ValidatePayload(p shipment.CarrierPayload) []string {
	var v []string

	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			v = append(v, field+" is required")
		}
	}
	positive := func(field string, value float64) {
		if value <= 0 {
			v = append(v, field+" must be greater than 0")
		}
	}

	required("order_id", p.OrderID)
	required("order_date", p.OrderDate)
	required("pickup_location", p.PickupLocation)

	required("billing_customer_name", p.BillingCustomerName)
	required("billing_address", p.BillingAddress)
	required("billing_city", p.BillingCity)
	required("billing_pincode", p.BillingPincode)
	required("billing_state", p.BillingState)
	required("billing_country", p.BillingCountry)
	required("billing_email", p.BillingEmail)
	required("billing_phone", p.BillingPhone)
	if p.BillingAddress != "" && !normalize.IsSufficientAddress(p.BillingAddress, p.BillingAddress2) {
		v = append(v, fmt.Sprintf("billing_address must be at least %d characters", normalize.MinimumAddressLength))
	}
	if p.BillingPincode != "" && !normalize.IsSixDigitPostal(p.BillingPincode) {
		v = append(v, "billing_pincode must be 6 digits")
	}
	if p.BillingPhone != "" && !normalize.IsTenDigitPhone(p.BillingPhone) {
		v = append(v, "billing_phone must be 10 digits")
	}

	if !p.ShippingIsBilling {
		required("shipping_address", p.ShippingAddress)
		required("shipping_pincode", p.ShippingPincode)
		if p.ShippingPincode != "" && !normalize.IsSixDigitPostal(p.ShippingPincode) {
			v = append(v, "shipping_pincode must be 6 digits")
		}
	}

	switch p.PaymentMethod {
	case shipment.PaymentCOD, shipment.PaymentPrepaid:
	case "":
		v = append(v, "payment_method is required")
	default:
		v = append(v, fmt.Sprintf("payment_method %q must be COD or Prepaid", p.PaymentMethod))
	}

	positive("sub_total", float64(p.SubTotal))
	if p.ShippingCharges < 0 {
		v = append(v, "shipping_charges must not be negative")
	}
	if p.TransactionCharges < 0 {
		v = append(v, "transaction_charges must not be negative")
	}

	positive("length", p.Length)
	positive("breadth", p.Breadth)
	positive("height", p.Height)
	positive("weight", p.Weight)

	if len(p.OrderItems) == 0 {
		v = append(v, "order_items must not be empty")
	}
	for i, item := range p.OrderItems {
		prefix := fmt.Sprintf("order_items[%d].", i)
		required(prefix+"name", item.Name)
		required(prefix+"sku", item.SKU)
		required(prefix+"hsn", item.HSN)
		positive(prefix+"units", float64(item.Units))
		positive(prefix+"selling_price", float64(item.SellingPrice))
	}

	if p.IsCOD() && p.CollectableAmount() <= 0 {
		v = append(v, "collectable amount must be greater than 0 for COD")
	}

	return v
}

// CheckPayload wraps a non-empty violation list into a validation error.
func CheckPayload(p shipment.CarrierPayload) error {
	if violations := ValidatePayload(p); len(violations) > 0 {
		return errs.NewValidationFailedError("carrier payload", violations)
	}
	return nil
}
