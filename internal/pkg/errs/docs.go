// Package errs provides standardized error types for the order lifecycle service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic validation errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value is outside allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// and the transition error taxonomy of the status state machine:
//   - InvalidTransitionError: the requested edge is not permitted for the role
//   - MissingJustificationError: a rollback was attempted without a reason
//   - ConflictError: a concurrent transition won the race for the order
//   - ErrForbidden: the actor has no standing over the specific order
//   - ErrStorageUnavailable: a transient storage failure, no partial write
//
// Each structured error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel for errors.Is classification
package errs
