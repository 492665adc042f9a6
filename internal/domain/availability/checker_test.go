//go:build unit

package availability_test

import (
	"testing"
	"time"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func span(t *testing.T, fromDay, toDay int) period.Period {
	t.Helper()
	p, err := period.Reconstruct(base.AddDate(0, 0, fromDay), base.AddDate(0, 0, toDay))
	require.NoError(t, err)
	return p
}

func newRoom(t *testing.T, number, typeName string, active bool) *room.Room {
	t.Helper()
	rate, err := money.New(10000, "USD")
	require.NoError(t, err)
	rt, err := room.NewType(typeName, 2, rate, nil)
	require.NoError(t, err)
	return room.Reconstruct(uuid.New(), number, rt, rate, active, 1, "", base, base)
}

func booking(roomID uuid.UUID, p period.Period, state reservation.State) *reservation.Reservation {
	return reservation.Reconstruct(reservation.ReconstructParams{
		ID:         uuid.New(),
		RoomID:     roomID,
		GuestID:    uuid.New(),
		Period:     p,
		State:      state,
		GuestCount: 1,
		Version:    1,
	})
}

func TestIsAvailable(t *testing.T) {
	checker := availability.NewChecker()
	r := newRoom(t, "101", "deluxe", true)
	other := newRoom(t, "102", "deluxe", true)
	existing := []*reservation.Reservation{
		booking(r.ID(), span(t, 0, 3), reservation.StateConfirmed),
		booking(r.ID(), span(t, 5, 7), reservation.StateCancelled),
		booking(r.ID(), span(t, 8, 9), reservation.StateCheckedOut),
		booking(other.ID(), span(t, 3, 5), reservation.StatePending),
	}

	tests := []struct {
		name string
		p    period.Period
		want bool
	}{
		{name: "overlaps confirmed", p: span(t, 2, 4), want: false},
		{name: "starts at checkout", p: span(t, 3, 5), want: true},
		{name: "ends at check-in", p: span(t, -2, 0), want: true},
		{name: "over cancelled", p: span(t, 5, 7), want: true},
		{name: "over checked out", p: span(t, 8, 9), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.IsAvailable(r, tt.p, existing))
		})
	}

	t.Run("inactive room", func(t *testing.T) {
		assert.False(t, checker.IsAvailable(newRoom(t, "103", "deluxe", false), span(t, 20, 21), nil))
	})
}

func TestHasConflict(t *testing.T) {
	checker := availability.NewChecker()
	r := newRoom(t, "101", "deluxe", true)
	mine := booking(r.ID(), span(t, 0, 3), reservation.StatePending)
	existing := []*reservation.Reservation{mine}

	assert.False(t, checker.HasConflict(r.ID(), mine.Period(), existing, mine.ID()))
	assert.True(t, checker.HasConflict(r.ID(), mine.Period(), existing, uuid.Nil))

	rival := booking(r.ID(), span(t, 1, 2), reservation.StateCheckedIn)
	assert.True(t, checker.HasConflict(r.ID(), mine.Period(), append(existing, rival), mine.ID()))
}

func TestFindAvailableRooms(t *testing.T) {
	checker := availability.NewChecker()
	deluxe1 := newRoom(t, "101", "deluxe", true)
	deluxe2 := newRoom(t, "102", "deluxe", true)
	suite := newRoom(t, "301", "suite", true)
	closed := newRoom(t, "302", "suite", false)
	rooms := []*room.Room{deluxe1, deluxe2, suite, closed}
	existing := []*reservation.Reservation{
		booking(deluxe1.ID(), span(t, 0, 3), reservation.StateConfirmed),
	}

	got := checker.FindAvailableRooms(rooms, span(t, 1, 2), "", existing)
	assert.Equal(t, []*room.Room{deluxe2, suite}, got)

	got = checker.FindAvailableRooms(rooms, span(t, 1, 2), "suite", existing)
	assert.Equal(t, []*room.Room{suite}, got)

	got = checker.FindAvailableRooms(rooms, span(t, 1, 2), "  SUITE ", existing)
	assert.Equal(t, []*room.Room{suite}, got)

	got = checker.FindAvailableRooms(rooms, span(t, 1, 2), "   ", existing)
	assert.Equal(t, []*room.Room{deluxe2, suite}, got)

	got = checker.FindAvailableRooms(rooms, span(t, 1, 2), "penthouse", existing)
	assert.Empty(t, got)
}
