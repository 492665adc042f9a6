package queries

import (
	"context"

	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	var found *user.User
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Users().FindByID(ctx, userID)
		return shared.MapRepoErr(err, shared.ErrUserNotFound, nil)
	})
	if err != nil {
		return nil, err
	}

	if !found.IsActive() {
		return nil, shared.ErrUserInactive
	}
	return NewUserView(found), nil
}
