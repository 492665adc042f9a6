package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/metrics"
	"hotel-reservation/internal/usecase/queries"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// Transition labels for metrics.
const (
	transitionConfirm  = "confirm"
	transitionCancel   = "cancel"
	transitionCheckIn  = "check_in"
	transitionCheckOut = "check_out"
)

// idempotencyTTL is how long a client key replays its original reservation.
const idempotencyTTL = 24 * time.Hour

type CreateReservationCommand struct {
	RoomID uuid.UUID `validate:"required"`
	// GuestID defaults to the actor. Only staff may book for someone else.
	GuestID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int    `validate:"min=1,max=10"`
	Notes      string `validate:"max=500"`
	CouponCode string `validate:"omitempty,max=20"`
	// IdempotencyKey makes retries return the first reservation instead of booking again. Nil disables it.
	IdempotencyKey uuid.UUID
}

type CancelReservationCommand struct {
	ReservationID uuid.UUID
	Reason        string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, actor shared.Actor, cmd CreateReservationCommand) (*queries.ReservationView, error)
	ConfirmReservation(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, actor shared.Actor, cmd CancelReservationCommand) (*queries.ReservationView, error)
	CheckIn(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error)
	CheckOut(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	checker *availability.Checker
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	checker *availability.Checker,
	clock clock.Clock,
	m *metrics.Metrics,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		factory: factory,
		checker: checker,
		clock:   clock,
		metrics: m,
	}
}

func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	actor shared.Actor,
	cmd CreateReservationCommand,
) (*queries.ReservationView, error) {
	view, replayed, err := c.createReservation(ctx, actor, cmd)
	if replayed {
		c.metrics.RecordReservation(metrics.OutcomeReplayed)
	} else {
		c.metrics.RecordReservation(creationOutcome(err))
	}
	return view, err
}

func (c *reservationCommandsImpl) createReservation(
	ctx context.Context,
	actor shared.Actor,
	cmd CreateReservationCommand,
) (*queries.ReservationView, bool, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, false, err
	}

	guestID := cmd.GuestID
	if guestID == uuid.Nil {
		guestID = actor.UserID
	}
	if !actor.CanAccess(guestID) {
		return nil, false, shared.ErrForbidden
	}
	cmd.GuestID = guestID

	now := c.clock.Now()
	stay, err := period.Reconstruct(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, false, err
	}
	// A keyed retry may arrive after check-in has passed. It still replays, so for keyed
	// requests the future check-in rule waits until no earlier booking is found.
	keyed := cmd.IdempotencyKey != uuid.Nil
	if !keyed {
		if stay, err = period.New(cmd.CheckIn, cmd.CheckOut, now); err != nil {
			return nil, false, err
		}
	}
	notes, err := reservation.NewNote(cmd.Notes)
	if err != nil {
		return nil, false, err
	}

	var (
		created  *reservation.Reservation
		replayed bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomEntity, err := tx.Rooms().FindByIDForUpdate(ctx, cmd.RoomID)
		if err != nil {
			return shared.MapRepoErr(err, shared.ErrRoomNotFound, nil)
		}

		// Looked up under the room lock so a concurrent retry sees the first attempt's key.
		if keyed {
			prior, err := c.replay(ctx, tx, actor.UserID, cmd, now)
			if err != nil {
				return err
			}
			if prior != nil {
				created, replayed = prior, true
				return nil
			}
			if stay, err = period.New(cmd.CheckIn, cmd.CheckOut, now); err != nil {
				return err
			}
		}

		if !roomEntity.IsBookable() {
			return shared.ErrRoomNotBookable
		}

		existing, err := tx.Reservations().FindByRoom(ctx, roomEntity.ID())
		if err != nil {
			return shared.MapRepoErr(err, nil, nil)
		}
		if !c.checker.IsAvailable(roomEntity, stay, existing) {
			return shared.ErrRoomNotAvailable
		}
		if !roomEntity.Type().Fits(cmd.GuestCount) {
			return errs.WithDetail(shared.ErrCapacityExceeded, capacityDetail(roomEntity))
		}

		couponEntity, err := c.loadCoupon(ctx, tx, cmd.CouponCode)
		if err != nil {
			return err
		}

		res, err := c.factory.CreateReservation(roomEntity, guestID, stay, cmd.GuestCount, couponEntity, notes)
		if err != nil {
			return err
		}

		if err := tx.Reservations().Save(ctx, res); err != nil {
			return shared.MapRepoErr(err, shared.ErrRoomNotFound, shared.ErrRoomNotAvailable)
		}
		if err := shared.EnqueueReservationEvent(ctx, tx, shared.NotificationReservationCreated, res, now); err != nil {
			return shared.MapRepoErr(err, nil, nil)
		}
		if keyed {
			if err := c.rememberKey(ctx, tx, actor.UserID, cmd, res.ID(), now); err != nil {
				return err
			}
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if replayed {
		slog.Info("reservation replayed",
			"reservation_id", created.ID(),
			"idempotency_key", cmd.IdempotencyKey,
			"actor_id", actor.UserID)
	} else {
		slog.Info("reservation created",
			"reservation_id", created.ID(),
			"room_id", created.RoomID(),
			"guest_id", created.GuestID(),
			"period", created.Period().String())
	}

	view, err := queries.NewReservationView(created)
	return view, replayed, err
}

func (c *reservationCommandsImpl) ConfirmReservation(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, actor, id, transitionConfirm, user.RoleGuest, shared.NotificationReservationConfirmed,
		func(ctx context.Context, tx shared.Tx, res *reservation.Reservation, now time.Time) (*reservation.Reservation, error) {
			confirmed, err := res.Confirm(now)
			if err != nil {
				return nil, err
			}

			// Another booking may have been made since this one was created.
			roomEntity, err := tx.Rooms().FindByIDForUpdate(ctx, res.RoomID())
			if err != nil {
				return nil, shared.MapRepoErr(err, shared.ErrRoomNotFound, nil)
			}
			existing, err := tx.Reservations().FindByRoom(ctx, roomEntity.ID())
			if err != nil {
				return nil, shared.MapRepoErr(err, nil, nil)
			}
			if c.checker.HasConflict(roomEntity.ID(), res.Period(), existing, res.ID()) {
				return nil, shared.ErrRoomNotAvailable
			}
			return confirmed, nil
		})
}

func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, actor shared.Actor, cmd CancelReservationCommand) (*queries.ReservationView, error) {
	if _, err := reservation.NewCancellationReason(cmd.Reason); err != nil {
		return nil, err
	}
	return c.transition(ctx, actor, cmd.ReservationID, transitionCancel, user.RoleGuest, shared.NotificationReservationCancelled,
		func(_ context.Context, _ shared.Tx, res *reservation.Reservation, now time.Time) (*reservation.Reservation, error) {
			return res.Cancel(cmd.Reason, now)
		})
}

func (c *reservationCommandsImpl) CheckIn(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, actor, id, transitionCheckIn, user.RoleStaff, shared.NotificationReservationCheckedIn,
		func(_ context.Context, _ shared.Tx, res *reservation.Reservation, now time.Time) (*reservation.Reservation, error) {
			return res.CheckIn(now)
		})
}

func (c *reservationCommandsImpl) CheckOut(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, actor, id, transitionCheckOut, user.RoleStaff, shared.NotificationReservationCheckedOut,
		func(_ context.Context, _ shared.Tx, res *reservation.Reservation, now time.Time) (*reservation.Reservation, error) {
			return res.CheckOut(now)
		})
}

type transitionFunc func(ctx context.Context, tx shared.Tx, res *reservation.Reservation, now time.Time) (*reservation.Reservation, error)

// transition loads, authorizes, applies and persists one lifecycle step in a single unit of work.
func (c *reservationCommandsImpl) transition(
	ctx context.Context,
	actor shared.Actor,
	id uuid.UUID,
	name string,
	minRole user.Role,
	notification string,
	apply transitionFunc,
) (*queries.ReservationView, error) {
	if err := actor.Require(minRole); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	var next *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, shared.ErrReservationNotFound, nil)
		}
		if !actor.CanAccess(res.GuestID()) {
			return shared.ErrForbidden
		}

		next, err = apply(ctx, tx, res, now)
		if err != nil {
			return err
		}

		if err := tx.Reservations().Save(ctx, next); err != nil {
			return shared.MapRepoErr(err, shared.ErrReservationNotFound, shared.ErrReservationModified)
		}
		if err := shared.EnqueueReservationEvent(ctx, tx, notification, next, now); err != nil {
			return shared.MapRepoErr(err, nil, nil)
		}
		return nil
	})
	c.metrics.RecordTransition(name, err)
	if err != nil {
		return nil, err
	}

	slog.Info("reservation "+next.State().String(),
		"reservation_id", next.ID(),
		"actor_id", actor.UserID,
		"version", next.Version())

	return queries.NewReservationView(next)
}

func (c *reservationCommandsImpl) loadCoupon(ctx context.Context, tx shared.Tx, code string) (*coupon.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	couponCode, err := coupon.NewCouponCode(code)
	if err != nil {
		return nil, err
	}
	found, err := tx.Coupons().FindByCode(ctx, couponCode)
	if err != nil {
		return nil, shared.MapRepoErr(err, shared.ErrCouponNotFound, nil)
	}
	return found, nil
}

// replay returns the reservation an earlier request with the same live key produced, if any.
func (c *reservationCommandsImpl) replay(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	cmd CreateReservationCommand,
	now time.Time,
) (*reservation.Reservation, error) {
	rec, err := tx.Idempotency().Find(ctx, cmd.IdempotencyKey, userID)
	if shared.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.MapRepoErr(err, nil, nil)
	}
	if rec.Expired(now) {
		return nil, nil
	}

	hash, err := requestHash(cmd)
	if err != nil {
		return nil, err
	}
	if rec.RequestHash != hash {
		return nil, shared.ErrIdempotencyKeyReuse
	}

	prior, err := tx.Reservations().FindByID(ctx, rec.ReservationID)
	if err != nil {
		return nil, shared.MapRepoErr(err, shared.ErrReservationNotFound, nil)
	}
	return prior, nil
}

func (c *reservationCommandsImpl) rememberKey(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	cmd CreateReservationCommand,
	reservationID uuid.UUID,
	now time.Time,
) error {
	hash, err := requestHash(cmd)
	if err != nil {
		return err
	}
	err = tx.Idempotency().Save(ctx, shared.IdempotencyRecord{
		Key:           cmd.IdempotencyKey,
		UserID:        userID,
		RequestHash:   hash,
		ReservationID: reservationID,
		ExpiresAt:     now.Add(idempotencyTTL),
		CreatedAt:     now,
	})
	return shared.MapRepoErr(err, nil, shared.ErrIdempotencyKeyReuse)
}

// requestHash fingerprints everything that shapes the booking, so a reused key with a different body is caught.
func requestHash(cmd CreateReservationCommand) (string, error) {
	b, err := json.Marshal(struct {
		RoomID     uuid.UUID `json:"room_id"`
		GuestID    uuid.UUID `json:"guest_id"`
		CheckIn    time.Time `json:"check_in"`
		CheckOut   time.Time `json:"check_out"`
		GuestCount int       `json:"guest_count"`
		Notes      string    `json:"notes"`
		CouponCode string    `json:"coupon_code"`
	}{
		RoomID:     cmd.RoomID,
		GuestID:    cmd.GuestID,
		CheckIn:    cmd.CheckIn.UTC(),
		CheckOut:   cmd.CheckOut.UTC(),
		GuestCount: cmd.GuestCount,
		Notes:      cmd.Notes,
		CouponCode: cmd.CouponCode,
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to encode request fingerprint")
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func creationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errs.Is(err, shared.ErrRoomNotAvailable):
		return metrics.OutcomeUnavailable
	case errs.KindOf(err) == errs.KindInfrastructure:
		return metrics.OutcomeError
	default:
		return metrics.OutcomeRejected
	}
}

func capacityDetail(r *room.Room) string {
	return fmt.Sprintf("room %s sleeps at most %d guests", r.Number(), r.Type().Capacity())
}
