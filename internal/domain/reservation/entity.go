package reservation

import (
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidReservationState   = errs.Define(errs.KindBusinessRule, "INVALID_RESERVATION_STATE", "invalid reservation state for this operation")
	ErrInvalidState              = errs.Define(errs.KindValidation, "UNKNOWN_RESERVATION_STATE", "unknown reservation state")
	ErrInvalidCancellationReason = errs.Define(errs.KindValidation, "INVALID_CANCELLATION_REASON", "cancellation reason must be between 10 and 200 characters")
	ErrNoteTooLong               = errs.Define(errs.KindValidation, "NOTE_TOO_LONG", "notes must be at most 500 characters")
	ErrInvalidGuestCount         = errs.Define(errs.KindValidation, "INVALID_GUEST_COUNT", "guest count must be between 1 and 10")
	ErrMissingReference          = errs.Define(errs.KindValidation, "MISSING_REFERENCE", "room and guest are required")
	ErrCheckInNotYetAllowed      = errs.Define(errs.KindBusinessRule, "CHECK_IN_TOO_EARLY", "check-in is not allowed before the check-in date")
)

// Reservation is immutable. Every transition returns a new value with a bumped version.
type Reservation struct {
	id                 uuid.UUID
	roomID             uuid.UUID
	guestID            uuid.UUID
	period             period.Period
	state              State
	totalPrice         money.Money
	guestCount         int
	notes              Note
	cancellationReason *CancellationReason
	cancelledAt        *time.Time
	couponID           *uuid.UUID
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

type NewParams struct {
	RoomID     uuid.UUID
	GuestID    uuid.UUID
	Period     period.Period
	TotalPrice money.Money
	GuestCount int
	Notes      Note
	CouponID   *uuid.UUID
}

// New builds a pending reservation. Room capacity is checked by the caller.
func New(p NewParams, now time.Time) (*Reservation, error) {
	if p.RoomID == uuid.Nil || p.GuestID == uuid.Nil {
		return nil, ErrMissingReference
	}
	if p.GuestCount < 1 || p.GuestCount > MaxGuestCount {
		return nil, ErrInvalidGuestCount
	}
	return &Reservation{
		id:         uuid.New(),
		roomID:     p.RoomID,
		guestID:    p.GuestID,
		period:     p.Period,
		state:      StatePending,
		totalPrice: p.TotalPrice,
		guestCount: p.GuestCount,
		notes:      p.Notes,
		couponID:   p.CouponID,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

type ReconstructParams struct {
	ID                 uuid.UUID
	RoomID             uuid.UUID
	GuestID            uuid.UUID
	Period             period.Period
	State              State
	TotalPrice         money.Money
	GuestCount         int
	Notes              Note
	CancellationReason *CancellationReason
	CancelledAt        *time.Time
	CouponID           *uuid.UUID
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(p ReconstructParams) *Reservation {
	return &Reservation{
		id:                 p.ID,
		roomID:             p.RoomID,
		guestID:            p.GuestID,
		period:             p.Period,
		state:              p.State,
		totalPrice:         p.TotalPrice,
		guestCount:         p.GuestCount,
		notes:              p.Notes,
		cancellationReason: p.CancellationReason,
		cancelledAt:        p.CancelledAt,
		couponID:           p.CouponID,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}
}

func (r *Reservation) Confirm(now time.Time) (*Reservation, error) {
	if r.state != StatePending {
		return nil, r.transitionError("confirm")
	}
	return r.transition(StateConfirmed, now), nil
}

func (r *Reservation) Cancel(reason string, now time.Time) (*Reservation, error) {
	if !r.IsCancellable() {
		return nil, r.transitionError("cancel")
	}
	cr, err := NewCancellationReason(reason)
	if err != nil {
		return nil, err
	}
	next := r.transition(StateCancelled, now)
	next.cancellationReason = &cr
	cancelledAt := now
	next.cancelledAt = &cancelledAt
	return next, nil
}

func (r *Reservation) CheckIn(now time.Time) (*Reservation, error) {
	if r.state != StateConfirmed {
		return nil, r.transitionError("check in")
	}
	if !r.period.HasStarted(now) {
		return nil, ErrCheckInNotYetAllowed
	}
	return r.transition(StateCheckedIn, now), nil
}

func (r *Reservation) CheckOut(now time.Time) (*Reservation, error) {
	if r.state != StateCheckedIn {
		return nil, r.transitionError("check out")
	}
	return r.transition(StateCheckedOut, now), nil
}

func (r *Reservation) IsCancellable() bool {
	return r.state == StatePending || r.state == StateConfirmed
}

// HoldsRoom reports whether this reservation blocks its room for its period.
func (r *Reservation) HoldsRoom() bool {
	return r.state.HoldsRoom()
}

// CancellationPenalty is zero unless the reservation was cancelled.
func (r *Reservation) CancellationPenalty() (money.Money, error) {
	if r.state != StateCancelled || r.cancelledAt == nil {
		return money.Zero(r.totalPrice.Currency()), nil
	}
	days := r.period.DaysUntilCheckIn(*r.cancelledAt)
	return r.totalPrice.Percent(pricing.PenaltyPercent(days))
}

func (r *Reservation) RefundAmount() (money.Money, error) {
	if r.state != StateCancelled {
		return money.Zero(r.totalPrice.Currency()), nil
	}
	penalty, err := r.CancellationPenalty()
	if err != nil {
		return money.Money{}, err
	}
	return r.totalPrice.Sub(penalty)
}

func (r *Reservation) IsOwnedBy(guestID uuid.UUID) bool {
	return r.guestID == guestID
}

func (r *Reservation) transition(to State, now time.Time) *Reservation {
	next := *r
	next.state = to
	next.version = r.version + 1
	next.updatedAt = now
	return &next
}

func (r *Reservation) transitionError(op string) error {
	return errs.WithDetail(ErrInvalidReservationState, "cannot "+op+" a reservation in state "+r.state.String())
}

func (r *Reservation) ID() uuid.UUID                           { return r.id }
func (r *Reservation) RoomID() uuid.UUID                       { return r.roomID }
func (r *Reservation) GuestID() uuid.UUID                      { return r.guestID }
func (r *Reservation) Period() period.Period                   { return r.period }
func (r *Reservation) State() State                            { return r.state }
func (r *Reservation) TotalPrice() money.Money                 { return r.totalPrice }
func (r *Reservation) GuestCount() int                         { return r.guestCount }
func (r *Reservation) Notes() Note                             { return r.notes }
func (r *Reservation) CancellationReason() *CancellationReason { return r.cancellationReason }
func (r *Reservation) CancelledAt() *time.Time                 { return r.cancelledAt }
func (r *Reservation) CouponID() *uuid.UUID                    { return r.couponID }
func (r *Reservation) Version() int                            { return r.version }
func (r *Reservation) CreatedAt() time.Time                    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time                    { return r.updatedAt }
