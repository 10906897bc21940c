// Package services provides the stateless domain services of the
// fulfillment core. None of them performs I/O and all are safe for
// concurrent use.
//
// The package includes:
//   - PricingEngine: converts a cart into a GST-inclusive price breakdown
//   - BuildGSTDisclosure: derives the invoice GST block from a pricing snapshot
//   - PayloadBuilder: projects an Order into the carrier order-creation schema
//   - ValidatePayload: checks a carrier payload before any network call
//   - SelectCourier: picks the fallback courier from a serviceability answer
//
// All money is whole rupees. Rates are decimals and every rounding step
// rounds half away from zero.
package services
