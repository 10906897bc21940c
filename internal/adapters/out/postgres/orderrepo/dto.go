// Package orderrepo persists order aggregates and their shipment sub-record
// in a single orders table. Line items, addresses and the GST disclosure are
// stored as JSONB; pricing and shipment fields are embedded columns so the
// lease and compare-and-swap updates stay single-row statements.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID                               `gorm:"type:uuid;primaryKey"`
	Number        string                                  `gorm:"size:32;not null;uniqueIndex"`
	Items         datatypes.JSONSlice[order.LineItem]     `gorm:"type:jsonb;not null"`
	Shipping      datatypes.JSONType[order.Address]       `gorm:"type:jsonb;not null"`
	Billing       datatypes.JSONType[order.Address]       `gorm:"type:jsonb;not null"`
	AddressNote   string                                  `gorm:"size:32"`
	PaymentMethod string                                  `gorm:"size:16;not null"`
	PaymentStatus string                                  `gorm:"size:16;not null"`
	Pricing       PricingDTO                              `gorm:"embedded;embeddedPrefix:pricing_"`
	GST           datatypes.JSONType[order.GSTDisclosure] `gorm:"type:jsonb"`
	Status        int                                     `gorm:"not null;index"`
	Shipment      ShipmentDTO                             `gorm:"embedded;embeddedPrefix:shipment_"`
	CreatedAt     time.Time                               `gorm:"not null;index"`
	UpdatedAt     time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PricingDTO holds the whole-rupee breakdown.
type PricingDTO struct {
	Subtotal     int64
	TaxableBase  int64
	TaxAmount    int64
	ShippingFee  int64
	CODSurcharge int64
	OnlineFee    int64
	OnlineFeeTax int64
	Total        int64
}

// ShipmentDTO holds the shipment sub-record and the single-writer lease.
type ShipmentDTO struct {
	State             int `gorm:"not null;default:0;index"`
	ShipmentID        string
	CarrierOrderID    string
	CourierName       string
	CourierID         string
	AWB               string `gorm:"index"`
	StatusTag         string
	PickupRequestedAt *time.Time
	LabelURL          string
	InvoiceURL        string
	ManifestURL       string
	CreateAttemptedAt *time.Time
	LeaseOwner        string
	LeaseUntil        *time.Time
}

// Column names used by the conditional updates.
const (
	colStatus            = "status"
	colPaymentStatus     = "payment_status"
	colShipmentState     = "shipment_state"
	colShipmentID        = "shipment_shipment_id"
	colCarrierOrderID    = "shipment_carrier_order_id"
	colCourierName       = "shipment_courier_name"
	colCourierID         = "shipment_courier_id"
	colAWB               = "shipment_awb"
	colStatusTag         = "shipment_status_tag"
	colPickupRequestedAt = "shipment_pickup_requested_at"
	colLabelURL          = "shipment_label_url"
	colInvoiceURL        = "shipment_invoice_url"
	colManifestURL       = "shipment_manifest_url"
	colCreateAttemptedAt = "shipment_create_attempted_at"
	colLeaseOwner        = "shipment_lease_owner"
	colLeaseUntil        = "shipment_lease_until"
)

func fromDomain(o *order.Order) OrderDTO {
	p := o.Pricing()
	s := o.Shipment()

	return OrderDTO{
		ID:            o.ID().Bytes(),
		Number:        o.Number(),
		Items:         datatypes.NewJSONSlice(o.Items()),
		Shipping:      datatypes.NewJSONType(o.ShippingAddress()),
		Billing:       datatypes.NewJSONType(o.BillingAddress()),
		AddressNote:   string(o.AddressNote()),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentStatus: string(o.PaymentStatus()),
		Pricing: PricingDTO{
			Subtotal:     p.Subtotal,
			TaxableBase:  p.TaxableBase,
			TaxAmount:    p.TaxAmount,
			ShippingFee:  p.ShippingFee,
			CODSurcharge: p.CODSurcharge,
			OnlineFee:    p.OnlineFee,
			OnlineFeeTax: p.OnlineFeeTax,
			Total:        p.Total,
		},
		GST:    datatypes.NewJSONType(o.GST()),
		Status: int(o.Status()),
		Shipment: ShipmentDTO{
			State:             int(s.State()),
			ShipmentID:        s.ShipmentID(),
			CarrierOrderID:    s.CarrierOrderID(),
			CourierName:       s.CourierName(),
			CourierID:         s.CourierID(),
			AWB:               s.AWB(),
			StatusTag:         s.StatusTag(),
			PickupRequestedAt: s.PickupRequestedAt(),
			LabelURL:          s.LabelURL(),
			InvoiceURL:        s.InvoiceURL(),
			ManifestURL:       s.ManifestURL(),
			CreateAttemptedAt: s.CreateAttemptedAt(),
		},
		CreatedAt: o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sh, err := shipment.RestoreShipment(shipment.RestoreParams{
		State:             shipment.State(dto.Shipment.State),
		ShipmentID:        dto.Shipment.ShipmentID,
		CarrierOrderID:    dto.Shipment.CarrierOrderID,
		CourierName:       dto.Shipment.CourierName,
		CourierID:         dto.Shipment.CourierID,
		AWB:               dto.Shipment.AWB,
		StatusTag:         dto.Shipment.StatusTag,
		PickupRequestedAt: dto.Shipment.PickupRequestedAt,
		LabelURL:          dto.Shipment.LabelURL,
		InvoiceURL:        dto.Shipment.InvoiceURL,
		ManifestURL:       dto.Shipment.ManifestURL,
		CreateAttemptedAt: dto.Shipment.CreateAttemptedAt,
	})
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:     id,
		Number: dto.Number,
		Details: order.Details{
			Items:         []order.LineItem(dto.Items),
			Shipping:      dto.Shipping.Data(),
			Billing:       dto.Billing.Data(),
			AddressNote:   order.AddressNote(dto.AddressNote),
			PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
			Pricing: order.Pricing{
				Subtotal:     dto.Pricing.Subtotal,
				TaxableBase:  dto.Pricing.TaxableBase,
				TaxAmount:    dto.Pricing.TaxAmount,
				ShippingFee:  dto.Pricing.ShippingFee,
				CODSurcharge: dto.Pricing.CODSurcharge,
				OnlineFee:    dto.Pricing.OnlineFee,
				OnlineFeeTax: dto.Pricing.OnlineFeeTax,
				Total:        dto.Pricing.Total,
			},
			GST: dto.GST.Data(),
		},
		Status:        order.Status(dto.Status),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		Shipment:      sh,
		CreatedAt:     dto.CreatedAt,
	})
}

// patchColumns maps the fields a shipment step produced onto their columns.
func patchColumns(p shipment.Patch) map[string]any {
	cols := map[string]any{}
	if p.State != nil {
		cols[colShipmentState] = int(*p.State)
	}
	putString := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	putString(colShipmentID, p.ShipmentID)
	putString(colCarrierOrderID, p.CarrierOrderID)
	putString(colCourierName, p.CourierName)
	putString(colCourierID, p.CourierID)
	putString(colAWB, p.AWB)
	putString(colStatusTag, p.StatusTag)
	putString(colLabelURL, p.LabelURL)
	putString(colInvoiceURL, p.InvoiceURL)
	putString(colManifestURL, p.ManifestURL)
	if p.PickupRequestedAt != nil {
		cols[colPickupRequestedAt] = *p.PickupRequestedAt
	}
	return cols
}
