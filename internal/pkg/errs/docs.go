// Package errs provides the error taxonomy shared by the order, delivery and deliverer services.
//
// Validation failures:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but malformed
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//
// Lookup and consistency failures:
//   - ObjectNotFoundError: an entity lookup missed
//   - DuplicateResourceError: a unique attribute is already taken
//   - InvalidStateTransitionError: a status change is not allowed by the state machine
//
// Peer service failures:
//   - RemoteUnavailableError: an outbound call failed or timed out
//
// Each type has a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) returned by Unwrap,
// so callers classify errors with errors.Is and read details with errors.As.
package errs
