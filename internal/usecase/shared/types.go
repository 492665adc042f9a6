package shared

import (
	"context"
	"encoding/json"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Notification kinds written to the outbox.
const (
	NotificationReservationCreated    = "reservation.created"
	NotificationReservationConfirmed  = "reservation.confirmed"
	NotificationReservationCancelled  = "reservation.cancelled"
	NotificationReservationCheckedIn  = "reservation.checked_in"
	NotificationReservationCheckedOut = "reservation.checked_out"
)

type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	GuestID       uuid.UUID `json:"guest_id"`
	State         string    `json:"state"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// IdempotencyRecord remembers which reservation a client-supplied key produced.
type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	RequestHash   string
	ReservationID uuid.UUID
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// EnqueueReservationEvent writes a lifecycle event in the caller's transaction.
func EnqueueReservationEvent(ctx context.Context, tx Tx, kind string, res *reservation.Reservation, at time.Time) error {
	payload, err := json.Marshal(ReservationEvent{
		ReservationID: res.ID(),
		RoomID:        res.RoomID(),
		GuestID:       res.GuestID(),
		State:         res.State().String(),
		CheckIn:       res.Period().CheckIn(),
		CheckOut:      res.Period().CheckOut(),
		OccurredAt:    at,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation event")
	}
	return tx.Notifications().CreateJob(ctx, kind, "guest:"+res.GuestID().String(), payload, at)
}
