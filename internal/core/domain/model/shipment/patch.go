package shipment

import "time"

// Patch is a field-level update produced by one transition. Nil fields are
// left untouched when the patch is applied or persisted.
type Patch struct {
	State             *State
	ShipmentID        *string
	CarrierOrderID    *string
	CourierName       *string
	CourierID         *string
	AWB               *string
	StatusTag         *string
	PickupRequestedAt *time.Time
	LabelURL          *string
	InvoiceURL        *string
	ManifestURL       *string
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply returns s with every non-nil field of p written over it.
func (p Patch) Apply(s Shipment) Shipment {
	if p.State != nil {
		s.state = *p.State
	}
	setString(&s.shipmentID, p.ShipmentID)
	setString(&s.carrierOrderID, p.CarrierOrderID)
	setString(&s.courierName, p.CourierName)
	setString(&s.courierID, p.CourierID)
	setString(&s.awb, p.AWB)
	setString(&s.statusTag, p.StatusTag)
	setString(&s.labelURL, p.LabelURL)
	setString(&s.invoiceURL, p.InvoiceURL)
	setString(&s.manifestURL, p.ManifestURL)
	if p.PickupRequestedAt != nil {
		at := *p.PickupRequestedAt
		s.pickupRequestedAt = &at
	}
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
