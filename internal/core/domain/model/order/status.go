package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Forward moves may skip intermediate states (an admin may confirm and
// ship in one step). Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Shipped
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo returns target if the move from s is allowed.
//
// Rules:
//   - target equal to s is accepted as a no-op
//   - terminal states accept nothing else
//   - Cancelled is reachable from every non-terminal state
//   - otherwise target must be later in the lifecycle than s
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target == s {
		return s, nil
	}
	if s.IsTerminal() {
		return Unknown, errs.NewStateIsInvalidErrorWithCause(
			"order", s.String(), fmt.Errorf("%s is terminal", s.String()))
	}
	if target == Cancelled || target > s {
		return target, nil
	}

	return Unknown, errs.NewStateIsInvalidErrorWithCause(
		"order", s.String(), fmt.Errorf("cannot move back to %s", target.String()))
}
