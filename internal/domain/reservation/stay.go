package reservation

import (
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// Stay is the half-open [check-in, check-out) date window of a reservation.
type Stay struct {
	CheckIn  Date
	CheckOut Date
}

// NewStay validates that check-out falls strictly after check-in.
func NewStay(checkIn, checkOut Date) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Stay{}, domain.NewValidationError("check-in and check-out dates are required")
	}
	if !checkOut.After(checkIn) {
		return Stay{}, domain.NewValidationError("check-out date must be after check-in date")
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights returns the whole-day length of the stay.
func (s Stay) Nights() int {
	return s.CheckIn.DaysUntil(s.CheckOut)
}

// TotalPriceCents derives the stay price from a nightly rate.
func (s Stay) TotalPriceCents(pricePerNightCents int64) int64 {
	return pricePerNightCents * int64(s.Nights())
}

// Equal reports whether two stays cover the same window.
func (s Stay) Equal(o Stay) bool {
	return s.CheckIn.Equal(o.CheckIn) && s.CheckOut.Equal(o.CheckOut)
}

// ConflictsWith reports whether a requested stay collides with an existing
// one on the same room. Boundaries are inclusive: a stay whose check-in
// equals another's check-out still conflicts (no same-day turnover). The SQL
// conflict query in the repository mirrors this predicate exactly.
func (s Stay) ConflictsWith(existing Stay) bool {
	return betweenInclusive(existing.CheckIn, s.CheckIn, s.CheckOut) ||
		betweenInclusive(existing.CheckOut, s.CheckIn, s.CheckOut) ||
		betweenInclusive(s.CheckIn, existing.CheckIn, existing.CheckOut)
}

// betweenInclusive reports lo <= d <= hi.
func betweenInclusive(d, lo, hi Date) bool {
	return !d.Before(lo) && !d.After(hi)
}
