package booking

import "errors"

var (
	ErrInvalidRange = errors.New("invalid booking date range")
	ErrConflict     = errors.New("booking dates are unavailable")
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("forbidden")
)
