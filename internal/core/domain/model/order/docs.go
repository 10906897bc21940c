// Package order provides the Order aggregate of the fulfillment core: what
// was bought, where it goes, how it is paid, what it costs, and how far its
// carrier shipment has progressed.
//
// The package includes:
//   - Order: the aggregate root holding line items, addresses, pricing,
//     GST disclosure, lifecycle status and the embedded shipment
//   - Status: the order lifecycle state machine
//   - Address and ReconcileAddresses: address value object and the
//     shipping/billing cross-fill rule
//   - Pricing and GSTDisclosure: immutable snapshots computed at checkout
//
// Key business rules:
//   - An order has at least one line item and a pricing snapshot whose
//     components add up to the total
//   - Both addresses are sufficient before the order is persisted
//   - Cancelled orders accept no further shipment transitions
//   - Delivered and Cancelled are terminal
package order
