// Package errs provides the shared error types of the service.
//
// Every type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) for errors.Is checks
//   - a struct carrying the details (parameter name, offending value, cause)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// Domain constructors use these to report field validation failures, and
// storage adapters use ObjectNotFoundError / ObjectAlreadyExistsError so the
// application layer can classify storage outcomes without knowing the driver.
package errs
