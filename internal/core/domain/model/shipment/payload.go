package shipment

// Carrier payment method codes.
const (
	PaymentCOD     = "COD"
	PaymentPrepaid = "Prepaid"
)

// CarrierPayload is the carrier's ad-hoc order creation schema.
type CarrierPayload struct {
	OrderID        string `json:"order_id"`
	OrderDate      string `json:"order_date"`
	PickupLocation string `json:"pickup_location"`
	ChannelID      string `json:"channel_id,omitempty"`

	BillingCustomerName string `json:"billing_customer_name"`
	BillingLastName     string `json:"billing_last_name"`
	BillingAddress      string `json:"billing_address"`
	BillingAddress2     string `json:"billing_address_2"`
	BillingCity         string `json:"billing_city"`
	BillingPincode      string `json:"billing_pincode"`
	BillingState        string `json:"billing_state"`
	BillingCountry      string `json:"billing_country"`
	BillingEmail        string `json:"billing_email"`
	BillingPhone        string `json:"billing_phone"`

	ShippingIsBilling    bool   `json:"shipping_is_billing"`
	ShippingCustomerName string `json:"shipping_customer_name,omitempty"`
	ShippingLastName     string `json:"shipping_last_name,omitempty"`
	ShippingAddress      string `json:"shipping_address,omitempty"`
	ShippingAddress2     string `json:"shipping_address_2,omitempty"`
	ShippingCity         string `json:"shipping_city,omitempty"`
	ShippingPincode      string `json:"shipping_pincode,omitempty"`
	ShippingState        string `json:"shipping_state,omitempty"`
	ShippingCountry      string `json:"shipping_country,omitempty"`
	ShippingEmail        string `json:"shipping_email,omitempty"`
	ShippingPhone        string `json:"shipping_phone,omitempty"`

	OrderItems    []CarrierItem `json:"order_items"`
	PaymentMethod string        `json:"payment_method"`

	ShippingCharges    int64 `json:"shipping_charges"`
	GiftwrapCharges    int64 `json:"giftwrap_charges"`
	TransactionCharges int64 `json:"transaction_charges"`
	TotalDiscount      int64 `json:"total_discount"`
	SubTotal           int64 `json:"sub_total"`

	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`

	// DeclaredValue is the goods value (taxable value plus tax) used for
	// serviceability lookups. It is not part of the creation request.
	DeclaredValue int64 `json:"-"`
}

// CarrierItem is one order line in the carrier schema. Tax is a percentage.
type CarrierItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice int64   `json:"selling_price"`
	Discount     int64   `json:"discount"`
	Tax          float64 `json:"tax"`
	HSN          string  `json:"hsn"`
}

func (p CarrierPayload) IsCOD() bool {
	return p.PaymentMethod == PaymentCOD
}

// CollectableAmount is what the courier collects for a COD shipment.
func (p CarrierPayload) CollectableAmount() int64 {
	return p.SubTotal + p.ShippingCharges + p.GiftwrapCharges + p.TransactionCharges - p.TotalDiscount
}

func (p CarrierPayload) TotalUnits() int {
	units := 0
	for _, item := range p.OrderItems {
		units += item.Units
	}
	return units
}
