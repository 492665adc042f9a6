package period

import (
	"fmt"
	"time"

	"hotel-reservation/internal/pkg/errs"
)

var (
	ErrInvalidPeriod = errs.Define(errs.KindValidation, "INVALID_PERIOD", "check-in must be before check-out")
	ErrPastCheckIn   = errs.Define(errs.KindValidation, "PAST_CHECK_IN", "check-in must be in the future")
)

const day = 24 * time.Hour

// Period is the half-open stay interval [checkIn, checkOut).
type Period struct {
	checkIn  time.Time
	checkOut time.Time
}

func New(checkIn, checkOut, now time.Time) (Period, error) {
	if !checkIn.Before(checkOut) {
		return Period{}, ErrInvalidPeriod
	}
	if !checkIn.After(now) {
		return Period{}, ErrPastCheckIn
	}
	return Period{checkIn: checkIn, checkOut: checkOut}, nil
}

// Reconstruct rebuilds a stored period without the future check-in rule.
func Reconstruct(checkIn, checkOut time.Time) (Period, error) {
	if !checkIn.Before(checkOut) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p Period) CheckIn() time.Time  { return p.checkIn }
func (p Period) CheckOut() time.Time { return p.checkOut }

// Nights rounds partial days up and is never less than one.
func (p Period) Nights() int {
	d := p.checkOut.Sub(p.checkIn)
	nights := int(d / day)
	if d%day != 0 {
		nights++
	}
	if nights < 1 {
		return 1
	}
	return nights
}

// Overlaps treats a shared boundary instant as free.
func (p Period) Overlaps(other Period) bool {
	return p.checkIn.Before(other.checkOut) && p.checkOut.After(other.checkIn)
}

// HasStarted reports whether the check-in calendar date is today or earlier in the check-in's zone.
func (p Period) HasStarted(now time.Time) bool {
	loc := p.checkIn.Location()
	return !dateOf(now.In(loc)).Before(dateOf(p.checkIn))
}

// DaysUntilCheckIn counts whole days from t to check-in. It is negative once check-in has passed.
func (p Period) DaysUntilCheckIn(t time.Time) int {
	d := p.checkIn.Sub(t)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

func (p Period) Equal(other Period) bool {
	return p.checkIn.Equal(other.checkIn) && p.checkOut.Equal(other.checkOut)
}

func (p Period) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(time.RFC3339), p.checkOut.Format(time.RFC3339))
}

func (p Period) String() string {
	return p.checkIn.Format(time.RFC3339) + "/" + p.checkOut.Format(time.RFC3339)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
