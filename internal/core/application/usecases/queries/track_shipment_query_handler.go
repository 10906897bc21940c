package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// TrackShipmentQueryHandler is a pass-through to the carrier's tracking
// endpoint. Nothing is persisted.
type TrackShipmentQueryHandler struct {
	carrier ports.CarrierClient
}

func NewTrackShipmentQueryHandler(carrier ports.CarrierClient) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{carrier: carrier}
}

func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (ports.Tracking, error) {
	if err := query.Validate(); err != nil {
		return ports.Tracking{}, err
	}

	tracking, err := h.carrier.TrackAWB(ctx, query.AWB())
	if err != nil {
		return ports.Tracking{}, err
	}
	if tracking.AWB == "" {
		tracking.AWB = query.AWB()
	}
	return tracking, nil
}
