package shipment

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

var (
	ErrShipmentAlreadyCreated = errors.New("carrier shipment already exists")
	ErrShipmentNotCreated     = errors.New("carrier shipment does not exist yet")
	ErrAWBAlreadyAssigned     = errors.New("awb is already assigned")
	ErrAWBNotAssigned         = errors.New("awb is not assigned")
	ErrCarrierOrderIDMissing  = errors.New("carrier order id is missing")
)

// Shipment is the carrier-assigned state of an order. The zero value is a
// valid shipment in the None state.
type Shipment struct {
	state             State
	shipmentID        string
	carrierOrderID    string
	courierName       string
	courierID         string
	awb               string
	statusTag         string
	pickupRequestedAt *time.Time
	labelURL          string
	invoiceURL        string
	manifestURL       string
	createAttemptedAt *time.Time
}

// RestoreParams carries persisted shipment columns.
type RestoreParams struct {
	State             State
	ShipmentID        string
	CarrierOrderID    string
	CourierName       string
	CourierID         string
	AWB               string
	StatusTag         string
	PickupRequestedAt *time.Time
	LabelURL          string
	InvoiceURL        string
	ManifestURL       string
	CreateAttemptedAt *time.Time
}

// RestoreShipment rebuilds a shipment from storage and checks that the
// identifiers required by its state are present.
func RestoreShipment(p RestoreParams) (Shipment, error) {
	if err := p.State.Validate(); err != nil {
		return Shipment{}, err
	}
	if p.State >= OrderCreated && p.ShipmentID == "" {
		return Shipment{}, errs.NewValueIsRequiredError("shipment_id")
	}
	if p.State == AWBAssigned && p.AWB == "" {
		return Shipment{}, errs.NewValueIsRequiredError("awb_code")
	}

	return Shipment{
		state:             p.State,
		shipmentID:        p.ShipmentID,
		carrierOrderID:    p.CarrierOrderID,
		courierName:       p.CourierName,
		courierID:         p.CourierID,
		awb:               p.AWB,
		statusTag:         p.StatusTag,
		pickupRequestedAt: p.PickupRequestedAt,
		labelURL:          p.LabelURL,
		invoiceURL:        p.InvoiceURL,
		manifestURL:       p.ManifestURL,
		createAttemptedAt: p.CreateAttemptedAt,
	}, nil
}

func (s Shipment) State() State            { return s.state }
func (s Shipment) ShipmentID() string      { return s.shipmentID }
func (s Shipment) CarrierOrderID() string  { return s.carrierOrderID }
func (s Shipment) CourierName() string     { return s.courierName }
func (s Shipment) CourierID() string       { return s.courierID }
func (s Shipment) AWB() string             { return s.awb }
func (s Shipment) StatusTag() string       { return s.statusTag }
func (s Shipment) LabelURL() string        { return s.labelURL }
func (s Shipment) InvoiceURL() string      { return s.invoiceURL }
func (s Shipment) ManifestURL() string     { return s.manifestURL }
func (s Shipment) PickupRequested() bool   { return s.pickupRequestedAt != nil }
func (s Shipment) LabelGenerated() bool    { return s.labelURL != "" }
func (s Shipment) InvoiceGenerated() bool  { return s.invoiceURL != "" }
func (s Shipment) ManifestGenerated() bool { return s.manifestURL != "" }
func (s Shipment) CreateAttempted() bool   { return s.createAttemptedAt != nil }

// PickupRequestedAt returns nil until a pickup has been requested.
func (s Shipment) PickupRequestedAt() *time.Time {
	if s.pickupRequestedAt == nil {
		return nil
	}
	at := *s.pickupRequestedAt
	return &at
}

// CreateAttemptedAt returns when carrier creation was last started, or nil
// if it never was. A shipment still in None with this set had a failed or
// interrupted create call.
func (s Shipment) CreateAttemptedAt() *time.Time {
	if s.createAttemptedAt == nil {
		return nil
	}
	at := *s.createAttemptedAt
	return &at
}

// ValidateCreate checks that no carrier shipment exists yet.
func (s Shipment) ValidateCreate() error {
	if s.state != None {
		return errs.NewStateIsInvalidErrorWithCause("shipment", s.state.String(), ErrShipmentAlreadyCreated)
	}
	return nil
}

// ValidateAssignAWB checks that a carrier shipment exists and has no AWB.
func (s Shipment) ValidateAssignAWB() error {
	switch s.state {
	case OrderCreated:
		return nil
	case AWBAssigned:
		return errs.NewStateIsInvalidErrorWithCause("shipment", s.state.String(), ErrAWBAlreadyAssigned)
	default:
		return errs.NewStateIsInvalidErrorWithCause("shipment", s.state.String(), ErrShipmentNotCreated)
	}
}

// ValidateDocuments checks the AWB prerequisite shared by pickup, label,
// invoice and manifest generation.
func (s Shipment) ValidateDocuments() error {
	if s.state != AWBAssigned {
		return errs.NewStateIsInvalidErrorWithCause("shipment", s.state.String(), ErrAWBNotAssigned)
	}
	return nil
}

// ValidateOrderDocuments checks the prerequisites of documents the carrier
// looks up by its own order id: the invoice and the printed manifest.
func (s Shipment) ValidateOrderDocuments() error {
	if err := s.ValidateDocuments(); err != nil {
		return err
	}
	if strings.TrimSpace(s.carrierOrderID) == "" {
		return errs.NewStateIsInvalidErrorWithCause("shipment", s.state.String(), ErrCarrierOrderIDMissing)
	}
	return nil
}

// Create records the carrier shipment. shipmentID is mandatory; a carrier
// that answers without one has not created anything.
func (s Shipment) Create(shipmentID, carrierOrderID, statusTag string) (Patch, error) {
	if err := s.ValidateCreate(); err != nil {
		return Patch{}, err
	}
	if strings.TrimSpace(shipmentID) == "" {
		return Patch{}, errs.NewValueIsRequiredError("shipment_id")
	}

	next := OrderCreated
	return Patch{
		State:          &next,
		ShipmentID:     &shipmentID,
		CarrierOrderID: optional(carrierOrderID),
		StatusTag:      optional(statusTag),
	}, nil
}

// AssignAWB records the airway bill and the courier that issued it.
func (s Shipment) AssignAWB(awb, courierName, courierID, statusTag string) (Patch, error) {
	if err := s.ValidateAssignAWB(); err != nil {
		return Patch{}, err
	}
	if strings.TrimSpace(awb) == "" {
		return Patch{}, errs.NewValueIsRequiredError("awb_code")
	}

	next := AWBAssigned
	if statusTag == "" {
		statusTag = AWBAssigned.String()
	}
	return Patch{
		State:       &next,
		AWB:         &awb,
		CourierName: optional(courierName),
		CourierID:   optional(courierID),
		StatusTag:   &statusTag,
	}, nil
}

// RequestPickup records when a pickup was requested from the carrier.
func (s Shipment) RequestPickup(at time.Time, statusTag string) (Patch, error) {
	if err := s.ValidateDocuments(); err != nil {
		return Patch{}, err
	}
	if at.IsZero() {
		return Patch{}, errs.NewValueIsRequiredError("pickup requested at")
	}

	at = at.UTC()
	return Patch{PickupRequestedAt: &at, StatusTag: optional(statusTag)}, nil
}

func (s Shipment) AttachLabel(url string) (Patch, error) {
	if err := s.validateDocumentURL("label_url", url); err != nil {
		return Patch{}, err
	}
	return Patch{LabelURL: &url}, nil
}

func (s Shipment) AttachInvoice(url string) (Patch, error) {
	if err := s.validateDocumentURL("invoice_url", url); err != nil {
		return Patch{}, err
	}
	return Patch{InvoiceURL: &url}, nil
}

func (s Shipment) AttachManifest(url string) (Patch, error) {
	if err := s.validateDocumentURL("manifest_url", url); err != nil {
		return Patch{}, err
	}
	return Patch{ManifestURL: &url}, nil
}

func (s Shipment) validateDocumentURL(field, url string) error {
	if err := s.ValidateDocuments(); err != nil {
		return err
	}
	if strings.TrimSpace(url) == "" {
		return errs.NewValueIsRequiredError(field)
	}
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
