package ports

import "fulfillment/internal/core/domain/model/kernel"

// ShipmentScheduler queues carrier shipment creation for an order. It must
// not block; orders it drops are picked up by the periodic sweep.
type ShipmentScheduler interface {
	Schedule(orderID kernel.UUID)
}
