package queries

import (
	"context"

	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomQueries interface {
	// ListRooms returns active rooms, or every room when includeInactive is set.
	ListRooms(ctx context.Context, includeInactive bool) ([]*RoomView, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListRoomTypes(ctx context.Context) ([]RoomTypeView, error)
}

type roomQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewRoomQueries(uow shared.UnitOfWork) RoomQueries {
	return &roomQueriesImpl{uow: uow}
}

func (q *roomQueriesImpl) ListRooms(ctx context.Context, includeInactive bool) ([]*RoomView, error) {
	var rooms []*room.Room
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if includeInactive {
			rooms, err = tx.Rooms().FindAll(ctx)
		} else {
			rooms, err = tx.Rooms().FindActive(ctx)
		}
		return shared.MapRepoErr(err, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	views := make([]*RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, NewRoomView(r))
	}
	return views, nil
}

func (q *roomQueriesImpl) GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	var found *room.Room
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Rooms().FindByID(ctx, id)
		return shared.MapRepoErr(err, shared.ErrRoomNotFound, nil)
	})
	if err != nil {
		return nil, err
	}
	return NewRoomView(found), nil
}

func (q *roomQueriesImpl) ListRoomTypes(ctx context.Context) ([]RoomTypeView, error) {
	var types []room.Type
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		types, err = tx.RoomTypes().FindAll(ctx)
		return shared.MapRepoErr(err, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	views := make([]RoomTypeView, 0, len(types))
	for _, t := range types {
		views = append(views, NewRoomTypeView(t))
	}
	return views, nil
}
