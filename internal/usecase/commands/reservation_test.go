//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/infra/memstore"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/metrics"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bookedAt = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	june1    = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	june3    = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	june4    = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	june5    = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	june6    = time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store        *memstore.Store
	clock        *clock.MockClock
	metrics      *metrics.Metrics
	reservations commands.ReservationCommands
	rooms        commands.RoomCommands
	guest        shared.Actor
	otherGuest   shared.Actor
	staff        shared.Actor
	admin        shared.Actor
	r1           *queries.RoomView
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:      memstore.NewStore(),
		clock:      clock.NewMockClock(bookedAt),
		metrics:    metrics.NewWithRegistry(prometheus.NewRegistry()),
		guest:      shared.Actor{UserID: uuid.New(), Role: user.RoleGuest},
		otherGuest: shared.Actor{UserID: uuid.New(), Role: user.RoleGuest},
		staff:      shared.Actor{UserID: uuid.New(), Role: user.RoleStaff},
		admin:      shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin},
	}
	calc := pricing.NewDefaultCalculator()
	f.reservations = commands.NewReservationCommands(
		f.store,
		reservation.NewFactory(f.clock, calc),
		availability.NewChecker(),
		f.clock,
		f.metrics,
	)
	f.rooms = commands.NewRoomCommands(f.store, f.clock, "USD")

	ctx := context.Background()
	_, err := f.rooms.CreateRoomType(ctx, f.admin, commands.CreateRoomTypeCommand{
		Name:      "Deluxe",
		Capacity:  2,
		BaseRate:  150,
		Amenities: []string{"wifi", "minibar"},
	})
	require.NoError(t, err)

	f.r1, err = f.rooms.CreateRoom(ctx, f.staff, commands.CreateRoomCommand{
		Number:   "R1",
		TypeName: "deluxe",
		Floor:    1,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) book(t *testing.T, in, out time.Time, guests int) (*queries.ReservationView, error) {
	t.Helper()
	return f.reservations.CreateReservation(context.Background(), f.guest, commands.CreateReservationCommand{
		RoomID:     f.r1.ID,
		CheckIn:    in,
		CheckOut:   out,
		GuestCount: guests,
	})
}

func (f *fixture) stored(t *testing.T, id uuid.UUID) *reservation.Reservation {
	t.Helper()
	var res *reservation.Reservation
	require.NoError(t, f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = tx.Reservations().FindByID(ctx, id)
		return err
	}))
	return res
}

func TestCreateReservation(t *testing.T) {
	t.Run("three nights cost 450 USD", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.book(t, june1, june4, 2)

		require.NoError(t, err)
		assert.Equal(t, 450.0, got.TotalPrice.Amount)
		assert.Equal(t, "USD", got.TotalPrice.Currency)
		assert.Equal(t, 3, got.Nights)
		assert.Equal(t, reservation.StatePending.String(), got.State)
		assert.Equal(t, f.guest.UserID, got.GuestID)
		assert.Equal(t, 1, got.Version)
		assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeCreated)))

		jobs := f.store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, shared.NotificationReservationCreated, jobs[0].Kind)
		assert.Equal(t, "guest:"+f.guest.UserID.String(), jobs[0].Topic)
	})

	t.Run("too many guests is CapacityExceeded", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.book(t, june1, june4, 3)

		assert.True(t, errs.Is(err, shared.ErrCapacityExceeded))
		assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
		assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeRejected)))
	})

	t.Run("overlapping stay is RoomNotAvailable", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)

		_, err = f.book(t, june3, june5, 1)

		assert.True(t, errs.Is(err, shared.ErrRoomNotAvailable))
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeUnavailable)))
	})

	t.Run("booking from the checkout day succeeds", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)

		_, err = f.book(t, june4, june6, 2)

		assert.NoError(t, err)
	})

	t.Run("cancelled period can be booked again", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)
		_, err = f.reservations.CancelReservation(context.Background(), f.guest, commands.CancelReservationCommand{
			ReservationID: first.ID,
			Reason:        "plans changed unexpectedly",
		})
		require.NoError(t, err)

		_, err = f.book(t, june1, june4, 2)

		assert.NoError(t, err)
	})

	t.Run("missing room is RoomNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservations.CreateReservation(context.Background(), f.guest, commands.CreateReservationCommand{
			RoomID:     uuid.New(),
			CheckIn:    june1,
			CheckOut:   june4,
			GuestCount: 1,
		})

		assert.True(t, errs.Is(err, shared.ErrRoomNotFound))
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("inactive room is RoomNotBookable", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.rooms.DeactivateRoom(context.Background(), f.staff, f.r1.ID)
		require.NoError(t, err)

		_, err = f.book(t, june1, june4, 1)

		assert.True(t, errs.Is(err, shared.ErrRoomNotBookable))
	})

	t.Run("past check-in is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.clock.Set(june3)

		_, err := f.book(t, june1, june4, 1)

		assert.True(t, errs.Is(err, period.ErrPastCheckIn))
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("zero guests is a validation error", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.book(t, june1, june4, 0)

		assert.True(t, errs.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("booking for another guest is Forbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservations.CreateReservation(context.Background(), f.guest, commands.CreateReservationCommand{
			RoomID:     f.r1.ID,
			GuestID:    f.otherGuest.UserID,
			CheckIn:    june1,
			CheckOut:   june4,
			GuestCount: 1,
		})

		assert.True(t, errs.Is(err, shared.ErrForbidden))
	})

	t.Run("staff can book on behalf of a guest", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.reservations.CreateReservation(context.Background(), f.staff, commands.CreateReservationCommand{
			RoomID:     f.r1.ID,
			GuestID:    f.guest.UserID,
			CheckIn:    june1,
			CheckOut:   june4,
			GuestCount: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, f.guest.UserID, got.GuestID)
	})

	t.Run("coupon takes 10 percent off", func(t *testing.T) {
		f := newFixture(t)
		c, err := coupon.NewCoupon(uuid.New(), "SUMMER10", 10, nil, nil)
		require.NoError(t, err)
		f.store.AddCoupon(c)

		got, err := f.reservations.CreateReservation(context.Background(), f.guest, commands.CreateReservationCommand{
			RoomID:     f.r1.ID,
			CheckIn:    june1,
			CheckOut:   june4,
			GuestCount: 2,
			CouponCode: "SUMMER10",
		})

		require.NoError(t, err)
		assert.Equal(t, 405.0, got.TotalPrice.Amount)
		require.NotNil(t, got.CouponID)
		assert.Equal(t, c.ID(), *got.CouponID)
	})

	t.Run("unknown coupon is CouponNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservations.CreateReservation(context.Background(), f.guest, commands.CreateReservationCommand{
			RoomID:     f.r1.ID,
			CheckIn:    june1,
			CheckOut:   june4,
			GuestCount: 2,
			CouponCode: "NOPE123",
		})

		assert.True(t, errs.Is(err, shared.ErrCouponNotFound))
	})
}

func TestCreateReservationIdempotency(t *testing.T) {
	ctx := context.Background()
	keyed := func(f *fixture, actor shared.Actor, key uuid.UUID, in, out time.Time) (*queries.ReservationView, error) {
		return f.reservations.CreateReservation(ctx, actor, commands.CreateReservationCommand{
			RoomID:         f.r1.ID,
			CheckIn:        in,
			CheckOut:       out,
			GuestCount:     2,
			IdempotencyKey: key,
		})
	}

	t.Run("a retry with the same key returns the first reservation", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()

		first, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)
		second, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.TotalPrice, second.TotalPrice)
		assert.Len(t, f.store.Jobs(), 1)
		assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeCreated)))
		assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeReplayed)))
	})

	t.Run("a retry after check-in has passed still replays", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		f.clock.Set(june1.Add(-time.Hour))
		first, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)

		f.clock.Set(june1.Add(5 * time.Minute))
		second, err := keyed(f, f.guest, key, june1, june4)

		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, f.store.Jobs(), 1)
	})

	t.Run("a new key still cannot book a past check-in", func(t *testing.T) {
		f := newFixture(t)
		f.clock.Set(june1.Add(5 * time.Minute))

		_, err := keyed(f, f.guest, uuid.New(), june1, june4)

		assert.True(t, errs.Is(err, period.ErrPastCheckIn))
		assert.Empty(t, f.store.Jobs())
	})

	t.Run("a key does not bypass period ordering", func(t *testing.T) {
		f := newFixture(t)

		_, err := keyed(f, f.guest, uuid.New(), june4, june1)

		assert.True(t, errs.Is(err, period.ErrInvalidPeriod))
	})

	t.Run("the replay survives the room being closed afterwards", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		first, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)
		_, err = f.rooms.DeactivateRoom(ctx, f.staff, f.r1.ID)
		require.NoError(t, err)

		second, err := keyed(f, f.guest, key, june1, june4)

		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("reusing a key for another stay is rejected", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)

		_, err = keyed(f, f.guest, key, june4, june6)

		assert.True(t, errs.Is(err, shared.ErrIdempotencyKeyReuse))
		assert.Equal(t, "IDEMPOTENCY_KEY_REUSED", errs.CodeOf(err))
		assert.Len(t, f.store.Jobs(), 1)
	})

	t.Run("an expired key books again", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		first, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)
		f.clock.Add(25 * time.Hour)

		second, err := keyed(f, f.guest, key, june4, june6)

		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("keys are scoped to the caller", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := keyed(f, f.guest, key, june1, june4)
		require.NoError(t, err)

		_, err = keyed(f, f.otherGuest, key, june1, june4)

		assert.True(t, errs.Is(err, shared.ErrRoomNotAvailable))
	})

	t.Run("a failed attempt leaves the key unused", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := f.reservations.CreateReservation(ctx, f.guest, commands.CreateReservationCommand{
			RoomID:         f.r1.ID,
			CheckIn:        june1,
			CheckOut:       june4,
			GuestCount:     3,
			IdempotencyKey: key,
		})
		require.True(t, errs.Is(err, shared.ErrCapacityExceeded))

		_, err = keyed(f, f.guest, key, june1, june4)

		assert.NoError(t, err)
	})
}

func TestCancelReservation(t *testing.T) {
	cases := []struct {
		name        string
		cancelAt    time.Time
		wantPenalty float64
		wantRefund  float64
	}{
		{name: "20 days ahead refunds everything", cancelAt: june1.AddDate(0, 0, -20), wantPenalty: 0, wantRefund: 450},
		{name: "5 days ahead costs 25 percent", cancelAt: june1.AddDate(0, 0, -5), wantPenalty: 112.5, wantRefund: 337.5},
		{name: "2 days ahead costs 50 percent", cancelAt: june1.AddDate(0, 0, -2), wantPenalty: 225, wantRefund: 225},
		{name: "same day costs everything", cancelAt: june1.Add(-6 * time.Hour), wantPenalty: 450, wantRefund: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			created, err := f.book(t, june1, june4, 2)
			require.NoError(t, err)

			f.clock.Set(tc.cancelAt)
			got, err := f.reservations.CancelReservation(context.Background(), f.guest, commands.CancelReservationCommand{
				ReservationID: created.ID,
				Reason:        "plans changed unexpectedly",
			})

			require.NoError(t, err)
			assert.Equal(t, reservation.StateCancelled.String(), got.State)
			require.NotNil(t, got.CancellationPenalty)
			require.NotNil(t, got.RefundAmount)
			assert.Equal(t, tc.wantPenalty, got.CancellationPenalty.Amount)
			assert.Equal(t, tc.wantRefund, got.RefundAmount.Amount)
		})
	}

	t.Run("too short a reason is rejected", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)

		_, err = f.reservations.CancelReservation(context.Background(), f.guest, commands.CancelReservationCommand{
			ReservationID: created.ID,
			Reason:        "nope",
		})

		assert.True(t, errs.Is(err, reservation.ErrInvalidCancellationReason))
		assert.Equal(t, reservation.StatePending, f.stored(t, created.ID).State())
	})

	t.Run("checked-out reservation cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)
		ctx := context.Background()
		_, err = f.reservations.ConfirmReservation(ctx, f.guest, created.ID)
		require.NoError(t, err)
		f.clock.Set(june1.Add(15 * time.Hour))
		_, err = f.reservations.CheckIn(ctx, f.staff, created.ID)
		require.NoError(t, err)
		_, err = f.reservations.CheckOut(ctx, f.staff, created.ID)
		require.NoError(t, err)

		_, err = f.reservations.CancelReservation(ctx, f.guest, commands.CancelReservationCommand{
			ReservationID: created.ID,
			Reason:        "plans changed unexpectedly",
		})

		assert.True(t, errs.Is(err, reservation.ErrInvalidReservationState))
	})

	t.Run("another guest's reservation is Forbidden", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)

		_, err = f.reservations.CancelReservation(context.Background(), f.otherGuest, commands.CancelReservationCommand{
			ReservationID: created.ID,
			Reason:        "plans changed unexpectedly",
		})

		assert.True(t, errs.Is(err, shared.ErrForbidden))
		assert.Equal(t, errs.KindAuthorization, errs.KindOf(err))
	})
}

func TestReservationLifecycle(t *testing.T) {
	t.Run("confirm through check-out", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		created, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)

		confirmed, err := f.reservations.ConfirmReservation(ctx, f.guest, created.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StateConfirmed.String(), confirmed.State)
		assert.Equal(t, 2, confirmed.Version)

		f.clock.Set(june1.Add(-time.Hour))
		_, err = f.reservations.CheckIn(ctx, f.staff, created.ID)
		assert.True(t, errs.Is(err, reservation.ErrCheckInNotYetAllowed))

		f.clock.Set(june1.Add(14 * time.Hour))
		checkedIn, err := f.reservations.CheckIn(ctx, f.staff, created.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StateCheckedIn.String(), checkedIn.State)

		f.clock.Set(june4.Add(10 * time.Hour))
		checkedOut, err := f.reservations.CheckOut(ctx, f.staff, created.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StateCheckedOut.String(), checkedOut.State)
		assert.Equal(t, 4, checkedOut.Version)

		kinds := make([]string, 0, 4)
		for _, job := range f.store.Jobs() {
			kinds = append(kinds, job.Kind)
		}
		assert.Equal(t, []string{
			shared.NotificationReservationCreated,
			shared.NotificationReservationConfirmed,
			shared.NotificationReservationCheckedIn,
			shared.NotificationReservationCheckedOut,
		}, kinds)
	})

	t.Run("second confirm fails and leaves state unchanged", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		created, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)
		_, err = f.reservations.ConfirmReservation(ctx, f.guest, created.ID)
		require.NoError(t, err)

		_, err = f.reservations.ConfirmReservation(ctx, f.guest, created.ID)

		assert.True(t, errs.Is(err, reservation.ErrInvalidReservationState))
		assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
		stored := f.stored(t, created.ID)
		assert.Equal(t, reservation.StateConfirmed, stored.State())
		assert.Equal(t, 2, stored.Version())
		assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.ReservationTransitionsTotal.WithLabelValues("confirm", "failed")))
	})

	t.Run("guests cannot check in", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		created, err := f.book(t, june1, june4, 2)
		require.NoError(t, err)
		_, err = f.reservations.ConfirmReservation(ctx, f.guest, created.ID)
		require.NoError(t, err)
		f.clock.Set(june1.Add(14 * time.Hour))

		_, err = f.reservations.CheckIn(ctx, f.guest, created.ID)

		assert.True(t, errs.Is(err, shared.ErrForbidden))
	})

	t.Run("missing reservation is ReservationNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservations.ConfirmReservation(context.Background(), f.guest, uuid.New())

		assert.True(t, errs.Is(err, shared.ErrReservationNotFound))
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}
