package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// State is the carrier-side progress of a shipment. The zero value means no
// shipment exists yet.
type State int

const (
	None State = iota
	OrderCreated
	AWBAssigned
)

func (s State) String() string {
	switch s {
	case None:
		return "NONE"
	case OrderCreated:
		return "ORDER_CREATED"
	case AWBAssigned:
		return "AWB_ASSIGNED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) Validate() error {
	if s < None || s > AWBAssigned {
		return errs.NewValueIsInvalidErrorWithCause("shipment state", fmt.Errorf("%d is not a valid state", int(s)))
	}
	return nil
}
