package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrShipmentCommandIsNotConstructed = errors.New(
		"ShipmentCommand must be created via NewShipmentCommand constructor",
	)
	ErrAssignAWBCommandIsNotConstructed = errors.New(
		"AssignAWBCommand must be created via NewAssignAWBCommand constructor",
	)
)

// ShipmentCommand targets one shipment step of an order: create shipment,
// pickup, label, invoice or manifest.
type ShipmentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewShipmentCommand(orderID kernel.UUID) (ShipmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipmentCommand{}, err
	}
	return ShipmentCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipmentCommand) Validate() error {
	return c.guard.Validate(ErrShipmentCommandIsNotConstructed)
}

func (c ShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AssignAWBCommand requests an AWB, optionally from a specific courier.
type AssignAWBCommand struct {
	orderID   kernel.UUID
	courierID string

	guard guard.ConstructorGuard
}

// NewAssignAWBCommand accepts an empty courierID, in which case the carrier
// picks one or the handler falls back to serviceability.
func NewAssignAWBCommand(orderID kernel.UUID, courierID string) (AssignAWBCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignAWBCommand{}, err
	}
	return AssignAWBCommand{
		orderID:   orderID,
		courierID: strings.TrimSpace(courierID),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignAWBCommand) Validate() error {
	return c.guard.Validate(ErrAssignAWBCommandIsNotConstructed)
}

func (c AssignAWBCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignAWBCommand) CourierID() string    { return c.courierID }
