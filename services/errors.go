// services/errors.go
package services

import "errors"

// Sentinel errors for the transactional core. Callers wrap them with
// fmt.Errorf("%w: ...") and controllers map them to HTTP statuses.
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a taken slot or insufficient stock. The operation
	// is fully aborted; nothing was written.
	ErrConflict = errors.New("conflict")

	// ErrAuthorization marks a failed admin password check. Any pending
	// gated action is preserved for a retry.
	ErrAuthorization = errors.New("authorization error")

	// ErrIntegrity marks an illegal state transition; never coerced to a
	// closest legal state.
	ErrIntegrity = errors.New("integrity error")

	// ErrTransient marks backing-store unavailability; the caller may
	// retry, this core never does.
	ErrTransient = errors.New("transient error")
)
