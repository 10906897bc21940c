// Package errs holds the typed errors shared by the domain, the use cases
// and the adapters.
//
// Every type pairs a sentinel with a detail struct, so callers match with
// errors.Is and read fields with errors.As:
//   - ObjectNotFoundError (ErrObjectNotFound): lookup by id or number found nothing
//   - ValueIsRequiredError (ErrValueIsRequired): a mandatory input or carrier field is empty
//   - ValueIsInvalidError (ErrValueIsInvalid): input breaks a business rule
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): numeric or duration limits
//   - VersionIsInvalidError (ErrVersionIsInvalid): a compare-and-swap found a different stored state
//   - StateIsInvalidError (ErrStateIsInvalid): the order or shipment state forbids the operation
//   - ValidationFailedError (ErrValidationFailed): carrier payload checks, with every violation in order
//
// StateIsInvalidError unwraps to its cause as well, so handlers can tell a
// cancelled order from a shipment that already exists.
//
// The HTTP adapter maps these sentinels to status codes. Carrier failures
// use ports.CarrierError instead.
package errs
