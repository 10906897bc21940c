package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
)

// CarrierClient is one method per carrier endpoint. Implementations never
// retry; retry policy belongs to the caller.
type CarrierClient interface {
	CheckServiceability(ctx context.Context, req ServiceabilityRequest) (Serviceability, error)
	CreateOrder(ctx context.Context, payload shipment.CarrierPayload) (CreateOrderResult, error)
	AssignAWB(ctx context.Context, shipmentID, courierID string) (AssignAWBResult, error)
	GeneratePickup(ctx context.Context, ref ShipmentRef) (PickupResult, error)
	GenerateLabel(ctx context.Context, ref ShipmentRef) (DocumentResult, error)
	PrintInvoice(ctx context.Context, ref ShipmentRef) (DocumentResult, error)
	GenerateManifest(ctx context.Context, ref ShipmentRef) error
	PrintManifest(ctx context.Context, ref ShipmentRef) (DocumentResult, error)
	TrackAWB(ctx context.Context, awb string) (Tracking, error)
}

// ShipmentRef identifies a carrier shipment by every id the carrier may ask for.
type ShipmentRef struct {
	ShipmentID     string
	CarrierOrderID string
	AWB            string
}

func RefOf(s shipment.Shipment) ShipmentRef {
	return ShipmentRef{ShipmentID: s.ShipmentID(), CarrierOrderID: s.CarrierOrderID(), AWB: s.AWB()}
}

type ServiceabilityRequest struct {
	PickupPostcode   string
	DeliveryPostcode string
	WeightKG         float64
	COD              bool
	DeclaredValue    int64
}

type Serviceability struct {
	RecommendedCourierID string
	Couriers             []services.CourierOption
}

type CreateOrderResult struct {
	ShipmentID     string
	CarrierOrderID string
	Status         string
}

type AssignAWBResult struct {
	AWB         string
	CourierName string
	CourierID   string
	Status      string
}

type PickupResult struct {
	Status        string
	ScheduledDate string
}

type DocumentResult struct {
	URL string
}

type Tracking struct {
	AWB           string
	CurrentStatus string
	ETD           string
	TrackURL      string
	Activities    []TrackingActivity
}

type TrackingActivity struct {
	Date     string
	Status   string
	Activity string
	Location string
}

var ErrCarrier = errors.New("carrier error")

// CarrierErrorKind classifies carrier failures.
type CarrierErrorKind string

const (
	// CarrierTransport means the call did not complete (network, timeout, 5xx).
	CarrierTransport CarrierErrorKind = "transport"
	// CarrierRejected means the carrier answered with an error status.
	CarrierRejected CarrierErrorKind = "rejected"
	// CarrierLogical means the call succeeded without the expected result field.
	CarrierLogical CarrierErrorKind = "logical"
	// CarrierAuthLocked means the carrier blocked logins after repeated failures.
	CarrierAuthLocked CarrierErrorKind = "auth_locked"
)

const authCooldownMessage = "The carrier has temporarily blocked logins after repeated authentication failures. " +
	"Wait about 30 minutes before retrying and check the configured carrier credentials."

// CarrierError is returned by every CarrierClient method.
type CarrierError struct {
	Op         string
	Kind       CarrierErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func NewCarrierTransportError(op string, status int, message string, cause error) *CarrierError {
	return &CarrierError{Op: op, Kind: CarrierTransport, StatusCode: status, Message: message, Cause: cause}
}

func NewCarrierRejectedError(op string, status int, message string) *CarrierError {
	return &CarrierError{Op: op, Kind: CarrierRejected, StatusCode: status, Message: message}
}

func NewCarrierAuthLockedError(op string, status int, message string) *CarrierError {
	return &CarrierError{Op: op, Kind: CarrierAuthLocked, StatusCode: status, Message: message}
}

// NewCarrierLogicalError reports a successful call that lacked field.
func NewCarrierLogicalError(op, field string) *CarrierError {
	return &CarrierError{Op: op, Kind: CarrierLogical, Message: field + " missing from carrier response"}
}

func (e *CarrierError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrCarrier, e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *CarrierError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrCarrier, e.Cause}
	}
	return []error{ErrCarrier}
}

// UserMessage is the text shown to an operator.
func (e *CarrierError) UserMessage() string {
	if e.Kind == CarrierAuthLocked {
		return authCooldownMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("carrier %s failed", e.Op)
}

// CourierRequired reports whether the carrier refused because no courier
// was chosen, which is the only case where AWB assignment is retried.
func (e *CarrierError) CourierRequired() bool {
	if e.Kind != CarrierRejected {
		return false
	}
	msg := strings.ToLower(e.Message)
	if !strings.Contains(msg, "courier") {
		return false
	}
	for _, hint := range []string{"select", "required", "not found", "no courier", "specify"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
