// Package shipment models the carrier-side record attached to an order.
//
// A Shipment moves through three states:
//
//	None ──> OrderCreated ──> AWBAssigned
//
// Once the AWB is assigned, pickup, label, invoice and manifest can be
// recorded independently and repeatedly; each of them only sets its own
// fields. Transitions never mutate the Shipment they are called on: they
// return a Patch holding exactly the fields the step produced, which the
// repository writes with a compare-and-swap on the expected prior state.
//
// The package also defines CarrierPayload, the transient order-creation
// document sent to the carrier. It is rebuilt from the persisted order on
// every step and never stored.
package shipment
