package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery asks the carrier for the scan history of an AWB.
type TrackShipmentQuery struct {
	awb string

	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(awb string) (TrackShipmentQuery, error) {
	awb = strings.TrimSpace(awb)
	if awb == "" {
		return TrackShipmentQuery{}, errs.NewValueIsRequiredError("awb")
	}
	return TrackShipmentQuery{awb: awb, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) AWB() string {
	return q.awb
}
