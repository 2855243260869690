package domain

import "errors"

// Error kinds surfaced by the point store. Callers classify with errors.Is;
// the storage and codec layers wrap these with detail.
var (
	// ErrMalformedGeometry means the input text is not a single-point WKT
	// expression.
	ErrMalformedGeometry = errors.New("malformed geometry")

	// ErrOutOfRange means ordinates fall outside [-180,180] x [-90,90].
	ErrOutOfRange = errors.New("coordinates out of range")

	// ErrInvalidBounds means a bounding box has min > max on an axis.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrStorageUnavailable means the spatial backend could not be reached
	// or bootstrapped. Fatal at startup; never retried silently.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConstraintViolation means the storage engine rejected an insert.
	ErrConstraintViolation = errors.New("constraint violation")
)
