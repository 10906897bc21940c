package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery returns the newest orders, optionally filtered by status.
//
// Example:
//
//	query, _ := NewListOrdersQuery([]order.Status{order.Confirmed}, 0)
//	rows, err := handler.Handle(ctx, query)
//	for _, r := range rows {
//	    fmt.Printf("%s %s awb=%s\n", r.Number, r.Status, r.AWB)
//	}
type ListOrdersQuery struct {
	statuses []order.Status
	limit    int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts an empty status list (all orders) and a zero
// limit (DefaultListLimit).
func NewListOrdersQuery(statuses []order.Status, limit int) (ListOrdersQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}

	return ListOrdersQuery{
		statuses: append([]order.Status(nil), statuses...),
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Statuses() []order.Status { return append([]order.Status(nil), q.statuses...) }
func (q ListOrdersQuery) Limit() int               { return q.limit }

// ListOrdersQueryResponse is one row of the admin order list.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        string
	Status        order.Status
	PaymentMethod order.PaymentMethod
	PaymentStatus order.PaymentStatus
	Total         int64
	ShipmentState shipment.State
	AWB           string
	CreatedAt     time.Time
}
