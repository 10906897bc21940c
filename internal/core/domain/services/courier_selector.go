package services

import (
	"errors"
	"strings"
)

// ErrNoCourierAvailable is returned when serviceability offers no courier
// for the route.
var ErrNoCourierAvailable = errors.New("no courier available")

// CourierOption is one courier offered by a serviceability lookup.
type CourierOption struct {
	ID            string
	Name          string
	Rate          float64
	EstimatedDays int
}

// SelectCourier picks the courier used when the carrier refuses to assign
// an AWB without one.
//
// Selection order:
//   - the carrier's recommended courier id, when present
//   - the first offered courier with a non-empty id
//
// The recommended id is honoured even if the offer list does not contain it;
// the name is filled in when it does.
func SelectCourier(recommendedID string, options []CourierOption) (CourierOption, error) {
	if id := strings.TrimSpace(recommendedID); id != "" {
		for _, opt := range options {
			if opt.ID == id {
				return opt, nil
			}
		}
		return CourierOption{ID: id}, nil
	}

	for _, opt := range options {
		if strings.TrimSpace(opt.ID) != "" {
			return opt, nil
		}
	}

	return CourierOption{}, ErrNoCourierAvailable
}
