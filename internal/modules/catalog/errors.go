package catalog

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidRange = errors.New("invalid availability window")
	ErrHasBookings  = errors.New("active bookings exist")
)
