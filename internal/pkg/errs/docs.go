// Package errs provides standardized error types for the parcel tracking
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes error types for common scenarios:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: a parcel or user cannot be found
//   - InvalidTransitionError: a status change that is not an edge of the lifecycle graph
//   - AuthorizationError: role, ownership, or state denial (reason-coded)
//   - GateBlockedError: mutation rejected while the parcel is flagged, held, or blocked
//   - ConflictError: uniqueness violations and lost-update conflicts
//   - VersionIsInvalidError: optimistic concurrency failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can match the sentinel
//
// The HTTP adapter relies on the sentinels to translate failures into stable
// response codes without inspecting message text.
package errs
