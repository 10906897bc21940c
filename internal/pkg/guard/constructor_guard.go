// Package guard detects values that bypassed their constructor. Commands,
// queries and value objects embed a ConstructorGuard and call Validate before
// use so a zero value can never reach a handler.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies
// no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is only valid when created by NewConstructorGuard.
//
// Example:
//
//	type ShipmentCommand struct {
//	    orderRef string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c ShipmentCommand) Validate() error {
//	    return c.guard.Validate(ErrShipmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
