package queries

import (
	"context"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	ListMine(ctx context.Context, actor shared.Actor) ([]*ReservationView, error)
	ListByRoom(ctx context.Context, actor shared.Actor, roomID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

// GetByID reports another guest's reservation as NotFound, the same as a missing id.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	var found *reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Reservations().FindByID(ctx, id)
		return shared.MapRepoErr(err, shared.ErrReservationNotFound, nil)
	})
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(found.GuestID()) {
		return nil, shared.ErrReservationNotFound
	}
	return NewReservationView(found)
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, actor shared.Actor) ([]*ReservationView, error) {
	var list []*reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		list, err = tx.Reservations().FindByGuest(ctx, actor.UserID)
		return shared.MapRepoErr(err, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return NewReservationViews(list)
}

func (q *reservationQueriesImpl) ListByRoom(ctx context.Context, actor shared.Actor, roomID uuid.UUID) ([]*ReservationView, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}

	var list []*reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().FindByID(ctx, roomID); err != nil {
			return shared.MapRepoErr(err, shared.ErrRoomNotFound, nil)
		}
		var err error
		list, err = tx.Reservations().FindByRoom(ctx, roomID)
		return shared.MapRepoErr(err, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return NewReservationViews(list)
}
