// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery looks an order up by id or by order number.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-260301-ABCDEF12")
//	o, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	ref string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(ref string) (GetOrderQuery, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order reference")
	}
	return GetOrderQuery{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Ref() string {
	return q.ref
}
