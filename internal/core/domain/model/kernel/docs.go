// Package kernel holds the shared identifier type of the fulfillment domain.
//
// UUID wraps github.com/google/uuid so aggregates never carry a nil
// identifier: the zero value fails Validate and every constructor rejects the
// nil UUID. Orders use it as their primary key while the human-readable order
// number is kept on the aggregate itself.
package kernel
