package commands

import (
	"context"
	"log/slog"
	"strings"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/usecase/queries"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRoomTypeCommand struct {
	Name      string   `validate:"required,max=50"`
	Capacity  int      `validate:"min=1"`
	BaseRate  float64  `validate:"gte=0"`
	Currency  string   `validate:"omitempty,len=3"`
	Amenities []string `validate:"dive,required"`
}

type CreateRoomCommand struct {
	Number   string `validate:"required,max=20"`
	TypeName string `validate:"required"`
	// BasePrice defaults to the type's base rate.
	BasePrice *float64 `validate:"omitempty,gte=0"`
	Floor     int      `validate:"min=1"`
	View      string   `validate:"max=50"`
}

type RoomCommands interface {
	CreateRoomType(ctx context.Context, actor shared.Actor, cmd CreateRoomTypeCommand) (*queries.RoomTypeView, error)
	CreateRoom(ctx context.Context, actor shared.Actor, cmd CreateRoomCommand) (*queries.RoomView, error)
	ActivateRoom(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.RoomView, error)
	DeactivateRoom(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.RoomView, error)
	ChangeRoomPrice(ctx context.Context, actor shared.Actor, id uuid.UUID, amount float64) (*queries.RoomView, error)
}

type roomCommandsImpl struct {
	uow             shared.UnitOfWork
	clock           clock.Clock
	defaultCurrency string
}

func NewRoomCommands(uow shared.UnitOfWork, clock clock.Clock, defaultCurrency string) RoomCommands {
	return &roomCommandsImpl{
		uow:             uow,
		clock:           clock,
		defaultCurrency: defaultCurrency,
	}
}

func (c *roomCommandsImpl) CreateRoomType(ctx context.Context, actor shared.Actor, cmd CreateRoomTypeCommand) (*queries.RoomTypeView, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	currency := cmd.Currency
	if currency == "" {
		currency = c.defaultCurrency
	}
	rate, err := money.FromMajor(cmd.BaseRate, currency)
	if err != nil {
		return nil, err
	}
	roomType, err := room.NewType(cmd.Name, cmd.Capacity, rate, cmd.Amenities)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.MapRepoErr(tx.RoomTypes().Save(ctx, roomType), nil, shared.ErrRoomTypeExists)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("room type created", "name", roomType.Name(), "actor_id", actor.UserID)
	view := queries.NewRoomTypeView(roomType)
	return &view, nil
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, actor shared.Actor, cmd CreateRoomCommand) (*queries.RoomView, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var created *room.Room
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomType, err := tx.RoomTypes().FindByName(ctx, strings.ToLower(strings.TrimSpace(cmd.TypeName)))
		if err != nil {
			return shared.MapRepoErr(err, shared.ErrRoomTypeNotFound, nil)
		}

		var basePrice *money.Money
		if cmd.BasePrice != nil {
			price, err := money.FromMajor(*cmd.BasePrice, roomType.BaseRate().Currency())
			if err != nil {
				return err
			}
			basePrice = &price
		}

		created, err = room.New(room.NewParams{
			Number:    cmd.Number,
			Type:      roomType,
			BasePrice: basePrice,
			Floor:     cmd.Floor,
			View:      cmd.View,
		}, c.clock.Now())
		if err != nil {
			return err
		}
		return shared.MapRepoErr(tx.Rooms().Save(ctx, created), nil, shared.ErrRoomNumberTaken)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("room created", "room_id", created.ID(), "number", created.Number(), "actor_id", actor.UserID)
	return queries.NewRoomView(created), nil
}

func (c *roomCommandsImpl) ActivateRoom(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.RoomView, error) {
	return c.update(ctx, actor, id, func(r *room.Room) (*room.Room, error) {
		return r.Activate(c.clock.Now())
	})
}

func (c *roomCommandsImpl) DeactivateRoom(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.RoomView, error) {
	return c.update(ctx, actor, id, func(r *room.Room) (*room.Room, error) {
		return r.Deactivate(c.clock.Now())
	})
}

func (c *roomCommandsImpl) ChangeRoomPrice(ctx context.Context, actor shared.Actor, id uuid.UUID, amount float64) (*queries.RoomView, error) {
	return c.update(ctx, actor, id, func(r *room.Room) (*room.Room, error) {
		price, err := money.FromMajor(amount, r.BasePrice().Currency())
		if err != nil {
			return nil, err
		}
		return r.ChangePrice(price, c.clock.Now()), nil
	})
}

func (c *roomCommandsImpl) update(ctx context.Context, actor shared.Actor, id uuid.UUID, apply func(*room.Room) (*room.Room, error)) (*queries.RoomView, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}

	var updated *room.Room
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Rooms().FindByIDForUpdate(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, shared.ErrRoomNotFound, nil)
		}
		updated, err = apply(current)
		if err != nil {
			return err
		}
		return shared.MapRepoErr(tx.Rooms().Save(ctx, updated), shared.ErrRoomNotFound, shared.ErrRoomNumberTaken)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("room updated", "room_id", updated.ID(), "active", updated.Active(), "actor_id", actor.UserID)
	return queries.NewRoomView(updated), nil
}
