package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type CheckoutRequest struct {
	Items         []order.LineItem  `json:"items"`
	Shipping      order.Address     `json:"shipping"`
	Billing       order.Address     `json:"billing"`
	PaymentMethod string            `json:"payment_method"`
	GST           *order.GSTRequest `json:"gst,omitempty"`
}

type AssignAWBRequest struct {
	CourierID string `json:"courier_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Items         []order.LineItem    `json:"items"`
	Shipping      order.Address       `json:"shipping"`
	Billing       order.Address       `json:"billing"`
	AddressNote   string              `json:"address_note,omitempty"`
	Pricing       order.Pricing       `json:"pricing"`
	GST           order.GSTDisclosure `json:"gst"`
	Shipment      ShipmentResponse    `json:"shipment"`
	CreatedAt     time.Time           `json:"created_at"`
}

type ShipmentResponse struct {
	State             string     `json:"state"`
	ShipmentID        string     `json:"shipment_id,omitempty"`
	CarrierOrderID    string     `json:"carrier_order_id,omitempty"`
	CourierName       string     `json:"courier_name,omitempty"`
	CourierID         string     `json:"courier_id,omitempty"`
	AWB               string     `json:"awb,omitempty"`
	StatusTag         string     `json:"status_tag,omitempty"`
	PickupRequestedAt *time.Time `json:"pickup_requested_at,omitempty"`
	LabelURL          string     `json:"label_url,omitempty"`
	InvoiceURL        string     `json:"invoice_url,omitempty"`
	ManifestURL       string     `json:"manifest_url,omitempty"`
	CreateAttemptedAt *time.Time `json:"create_attempted_at,omitempty"`
}

type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	Total         int64     `json:"total"`
	ShipmentState string    `json:"shipment_state"`
	AWB           string    `json:"awb,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type TrackingResponse struct {
	AWB           string                     `json:"awb"`
	CurrentStatus string                     `json:"current_status"`
	ETD           string                     `json:"etd,omitempty"`
	TrackURL      string                     `json:"track_url,omitempty"`
	Activities    []TrackingActivityResponse `json:"activities"`
}

type TrackingActivityResponse struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Activity string `json:"activity"`
	Location string `json:"location"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code          int            `json:"code"`
	Message       string         `json:"message"`
	Violations    []string       `json:"violations,omitempty"`
	Shipping      *order.Address `json:"shipping,omitempty"`
	Billing       *order.Address `json:"billing,omitempty"`
	CarrierStatus int            `json:"carrier_status,omitempty"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	s := o.Shipment()
	return OrderResponse{
		ID:            o.ID().String(),
		Number:        o.Number(),
		Status:        o.Status().String(),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentStatus: string(o.PaymentStatus()),
		Items:         o.Items(),
		Shipping:      o.ShippingAddress(),
		Billing:       o.BillingAddress(),
		AddressNote:   string(o.AddressNote()),
		Pricing:       o.Pricing(),
		GST:           o.GST(),
		Shipment: ShipmentResponse{
			State:             s.State().String(),
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

func newOrderSummaryResponse(row queries.ListOrdersQueryResponse) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            row.ID.String(),
		Number:        row.Number,
		Status:        row.Status.String(),
		PaymentMethod: string(row.PaymentMethod),
		PaymentStatus: string(row.PaymentStatus),
		Total:         row.Total,
		ShipmentState: row.ShipmentState.String(),
		AWB:           row.AWB,
		CreatedAt:     row.CreatedAt,
	}
}

func newTrackingResponse(t ports.Tracking) TrackingResponse {
	out := TrackingResponse{
		AWB:           t.AWB,
		CurrentStatus: t.CurrentStatus,
		ETD:           t.ETD,
		TrackURL:      t.TrackURL,
		Activities:    make([]TrackingActivityResponse, len(t.Activities)),
	}
	for i, a := range t.Activities {
		out.Activities[i] = TrackingActivityResponse(a)
	}
	return out
}
