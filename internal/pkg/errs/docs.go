// Package errs defines the error kinds shared across the domain, application,
// and adapter layers.
//
// Each kind follows the same shape: a sentinel (ErrObjectNotFound,
// ErrValueIsInvalid, ErrValueIsOutOfRange, ErrValueIsRequired,
// ErrVersionIsInvalid, ErrConflict, ErrServiceUnavailable), a struct carrying
// the details, constructors with and without a cause, and Error/Unwrap methods
// so callers can classify with errors.Is and errors.As. The HTTP adapter maps
// these kinds onto response status codes, so handlers return them directly
// instead of transport-specific errors.
package errs
