//go:build unit

package commands_test

import (
	"context"
	"testing"

	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCommands(t *testing.T) {
	t.Run("base price defaults to the type rate", func(t *testing.T) {
		f := newFixture(t)

		assert.Equal(t, 150.0, f.r1.BasePrice.Amount)
		assert.Equal(t, "deluxe", f.r1.Type.Name)
		assert.Equal(t, []string{"wifi", "minibar"}, f.r1.Type.Amenities)
		assert.True(t, f.r1.Active)
	})

	t.Run("explicit base price", func(t *testing.T) {
		f := newFixture(t)
		price := 180.5

		got, err := f.rooms.CreateRoom(context.Background(), f.staff, commands.CreateRoomCommand{
			Number:    "R2",
			TypeName:  "Deluxe",
			BasePrice: &price,
			Floor:     2,
			View:      "sea",
		})

		require.NoError(t, err)
		assert.Equal(t, 180.5, got.BasePrice.Amount)
		assert.Equal(t, "sea", got.View)
	})

	t.Run("duplicate room number is a conflict", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.CreateRoom(context.Background(), f.staff, commands.CreateRoomCommand{
			Number:   "R1",
			TypeName: "deluxe",
			Floor:    1,
		})

		assert.True(t, errs.Is(err, shared.ErrRoomNumberTaken))
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("unknown type is RoomTypeNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.CreateRoom(context.Background(), f.staff, commands.CreateRoomCommand{
			Number:   "R9",
			TypeName: "penthouse",
			Floor:    9,
		})

		assert.True(t, errs.Is(err, shared.ErrRoomTypeNotFound))
	})

	t.Run("only admins create types", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.CreateRoomType(context.Background(), f.staff, commands.CreateRoomTypeCommand{
			Name:     "suite",
			Capacity: 4,
			BaseRate: 400,
		})

		assert.True(t, errs.Is(err, shared.ErrForbidden))
	})

	t.Run("duplicate type name is a conflict", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.CreateRoomType(context.Background(), f.admin, commands.CreateRoomTypeCommand{
			Name:     "deluxe",
			Capacity: 3,
			BaseRate: 100,
		})

		assert.True(t, errs.Is(err, shared.ErrRoomTypeExists))
	})

	t.Run("guests cannot create rooms", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.CreateRoom(context.Background(), f.guest, commands.CreateRoomCommand{
			Number:   "R2",
			TypeName: "deluxe",
			Floor:    1,
		})

		assert.True(t, errs.Is(err, shared.ErrForbidden))
	})

	t.Run("activating an active room fails", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.ActivateRoom(context.Background(), f.staff, f.r1.ID)

		assert.True(t, errs.Is(err, room.ErrInvalidStateTransition))
		assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		off, err := f.rooms.DeactivateRoom(ctx, f.staff, f.r1.ID)
		require.NoError(t, err)
		assert.False(t, off.Active)

		_, err = f.rooms.DeactivateRoom(ctx, f.staff, f.r1.ID)
		assert.True(t, errs.Is(err, room.ErrInvalidStateTransition))

		on, err := f.rooms.ActivateRoom(ctx, f.staff, f.r1.ID)
		require.NoError(t, err)
		assert.True(t, on.Active)
	})

	t.Run("change price", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.rooms.ChangeRoomPrice(context.Background(), f.staff, f.r1.ID, 99.99)

		require.NoError(t, err)
		assert.Equal(t, 99.99, got.BasePrice.Amount)
		assert.Equal(t, "USD", got.BasePrice.Currency)
	})

	t.Run("repricing a missing room is RoomNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.rooms.ChangeRoomPrice(context.Background(), f.staff, uuid.New(), 10)

		assert.True(t, errs.Is(err, shared.ErrRoomNotFound))
	})
}
