// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, the carrier API and shipment scheduling.
package ports

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
)

var (
	// ErrShipmentBusy is returned when another shipment operation holds the
	// order's lease.
	ErrShipmentBusy = errors.New("another shipment operation is in progress for this order")

	// ErrOrderNumberTaken is returned when an order number already exists.
	ErrOrderNumberTaken = errors.New("order number already exists")
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Shipment progress is never written through Update. It goes through the
// lease and compare-and-swap methods so that only one writer can move a
// shipment forward at a time.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Returns ErrOrderNumberTaken if the order number is already used.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle and payment status changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// ListByStatus returns the most recent orders in any of the given statuses.
	ListByStatus(ctx context.Context, statuses []order.Status, limit int) ([]*order.Order, error)

	// ListAwaitingShipment returns non-cancelled orders created before the
	// cutoff that still have no carrier shipment and were never attempted,
	// oldest first.
	ListAwaitingShipment(ctx context.Context, createdBefore time.Time, limit int) ([]*order.Order, error)

	// MarkShipmentCreateAttempted records that carrier creation started for
	// an order whose shipment is still None. Returns errs.VersionIsInvalidError
	// when the shipment has moved on.
	MarkShipmentCreateAttempted(ctx context.Context, id kernel.UUID, at time.Time) error

	// AcquireShipmentLease reserves the order's shipment for owner during ttl.
	// Returns ErrShipmentBusy while an unexpired lease is held by someone else.
	AcquireShipmentLease(ctx context.Context, id kernel.UUID, owner string, ttl time.Duration) error

	// SaveShipment writes patch if the stored shipment state equals expected
	// and owner still holds the lease, then releases the lease. Returns
	// errs.VersionIsInvalidError when either condition fails.
	SaveShipment(ctx context.Context, id kernel.UUID, owner string, expected shipment.State, patch shipment.Patch) error

	// ReleaseShipmentLease drops owner's lease without writing anything.
	ReleaseShipmentLease(ctx context.Context, id kernel.UUID, owner string) error
}
