package daterange

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned for a missing, inverted or zero-night range.
var ErrInvalidRange = errors.New("invalid date range")

// Range is a stay interval with day granularity. Time-of-day on the
// endpoints is noise: comparisons always go through Normalize first.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New builds a Range from raw check-in/check-out instants. Both endpoints
// are mandatory and the range must cover at least one night.
func New(start, end time.Time) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, ErrInvalidRange
	}
	r := Range{Start: start, End: end}
	if r.Nights() <= 0 {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Normalize clamps Start to the first UTC instant of its calendar day and
// End to the last, so that two ranges touching the same day always compare
// the same way regardless of input time component or zone offset.
func (r Range) Normalize() Range {
	return Range{
		Start: startOfDay(r.Start),
		End:   endOfDay(r.End),
	}
}

// Nights returns the number of nights stayed: the calendar-day difference
// between End and Start, exclusive of the checkout day. Jan 1 -> Jan 4 is
// three nights.
func (r Range) Nights() int {
	return int(startOfDay(r.End).Sub(startOfDay(r.Start)) / (24 * time.Hour))
}

// Overlaps reports whether r shares at least one calendar day with other.
// Checkout day equal to the other range's checkin day counts as overlap:
// same-day turnover is not allowed.
func (r Range) Overlaps(other Range) bool {
	a, b := r.Normalize(), other.Normalize()

	if within(a.Start, b) || within(a.End, b) {
		return true
	}
	// candidate fully contains the existing range
	return a.Start.Before(b.Start) && a.End.After(b.End)
}

// Days returns the range with both endpoints clamped to the first UTC
// instant of their calendar day, the canonical form for storage.
func (r Range) Days() Range {
	return Range{
		Start: startOfDay(r.Start),
		End:   startOfDay(r.End),
	}
}

// OverlapsAny scans existing ranges linearly and reports whether any of
// them conflicts with r.
func OverlapsAny(r Range, existing []Range) bool {
	for _, e := range existing {
		if r.Overlaps(e) {
			return true
		}
	}
	return false
}

func within(t time.Time, r Range) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// startOfDay pins t's nominal calendar day to UTC. Inputs arrive with
// arbitrary zone offsets; keeping the offset would let the same nominal
// date land on different stored days per client zone.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
