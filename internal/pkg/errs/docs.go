// Package errs provides standardized error types for the package tracking service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes the error kinds surfaced by the core:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: the target does not resolve (or is hidden by a soft delete)
//   - PermissionDeniedError: the authorization policy rejected the operation
//   - PersistenceFailureError: the store failed, e.g. on a unique constraint
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the kind
package errs
