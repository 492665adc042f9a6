//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingReservation(t *testing.T) *reservation.Reservation {
	t.Helper()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	stay, err := period.New(
		time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC),
		now,
	)
	require.NoError(t, err)
	price, err := money.New(45000, "USD")
	require.NoError(t, err)
	res, err := reservation.New(reservation.NewParams{
		RoomID:     uuid.New(),
		GuestID:    uuid.New(),
		Period:     stay,
		TotalPrice: price,
		GuestCount: 2,
	}, now)
	require.NoError(t, err)
	return res
}

func TestReservationSave(t *testing.T) {
	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "success",
			tag:  pgconn.NewCommandTag("INSERT 0 1"),
		},
		{
			name:     "stale version",
			tag:      pgconn.NewCommandTag("INSERT 0 0"),
			wantKind: infra.KindConflict,
		},
		{
			name:     "exclusion violation",
			tag:      pgconn.NewCommandTag(""),
			execErr:  &pgconn.PgError{Code: "23P01"},
			wantKind: infra.KindConflict,
		},
		{
			name:     "database error",
			tag:      pgconn.NewCommandTag(""),
			execErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, saveReservation, mock.Anything).Return(tt.tag, tt.execErr)

			repo := NewReservationRepository(dbtx)
			err := repo.Save(context.Background(), newPendingReservation(t))

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestReservationSaveBindsStayAsRange(t *testing.T) {
	dbtx := new(MockDBTX)
	res := newPendingReservation(t)

	dbtx.On("Exec", mock.Anything, saveReservation, mock.MatchedBy(func(args []any) bool {
		return len(args) == 15 && args[3] == res.Period().ToTstzrange() && args[12] == int32(1)
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	repo := NewReservationRepository(dbtx)
	require.NoError(t, repo.Save(context.Background(), res))
	dbtx.AssertExpectations(t)
}

func TestRoomFindByID(t *testing.T) {
	tests := []struct {
		name     string
		scanErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{
			name:     "not found",
			scanErr:  pgx.ErrNoRows,
			wantKind: infra.KindNotFound,
		},
		{
			name:     "database error",
			scanErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			dbtx := new(MockDBTX)
			dbtx.On("QueryRow", mock.Anything, selectRoomByID, []any{id}).Return(errRow{err: tt.scanErr})

			repo := NewRoomRepository(dbtx)
			got, err := repo.FindByID(context.Background(), id)

			assert.Nil(t, got)
			assert.True(t, infra.IsKind(err, tt.wantKind))
			dbtx.AssertExpectations(t)
		})
	}
}

func TestRoomFindByIDForUpdateUsesRowLock(t *testing.T) {
	id := uuid.New()
	dbtx := new(MockDBTX)
	dbtx.On("QueryRow", mock.Anything, selectRoomByIDForUpdate, []any{id}).Return(errRow{err: pgx.ErrNoRows})

	repo := NewRoomRepository(dbtx)
	_, err := repo.FindByIDForUpdate(context.Background(), id)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.Contains(t, selectRoomByIDForUpdate, "FOR UPDATE")
	dbtx.AssertExpectations(t)
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "success",
			tag:  pgconn.NewCommandTag("UPDATE 1"),
		},
		{
			name:     "missing user",
			tag:      pgconn.NewCommandTag("UPDATE 0"),
			wantKind: infra.KindNotFound,
		},
		{
			name:     "database error",
			tag:      pgconn.NewCommandTag(""),
			execErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, updateUserLastLogin, []any{testUserID, at}).Return(tt.tag, tt.execErr)

			repo := NewUserRepository(dbtx)
			err := repo.UpdateLastLogin(context.Background(), testUserID, at)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, insertUser, mock.Anything).
		Return(pgconn.NewCommandTag(""), &pgconn.PgError{Code: "23505"})

	repo := NewUserRepository(dbtx)
	err := repo.Create(context.Background(), newGuest(t))

	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	dbtx.AssertExpectations(t)
}

func TestIdempotencySaveKeepsLiveKeys(t *testing.T) {
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rec := shared.IdempotencyRecord{
		Key:           uuid.New(),
		UserID:        uuid.New(),
		RequestHash:   "abc",
		ReservationID: uuid.New(),
		ExpiresAt:     at.Add(24 * time.Hour),
		CreatedAt:     at,
	}
	args := []any{rec.Key, rec.UserID, rec.RequestHash, rec.ReservationID, rec.ExpiresAt, rec.CreatedAt}

	t.Run("claimed", func(t *testing.T) {
		dbtx := new(MockDBTX)
		dbtx.On("Exec", mock.Anything, saveIdempotencyKey, args).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

		err := NewIdempotencyRepository(dbtx).Save(context.Background(), rec)

		assert.NoError(t, err)
		dbtx.AssertExpectations(t)
	})

	t.Run("live key left untouched", func(t *testing.T) {
		dbtx := new(MockDBTX)
		dbtx.On("Exec", mock.Anything, saveIdempotencyKey, args).Return(pgconn.NewCommandTag("INSERT 0 0"), nil)

		err := NewIdempotencyRepository(dbtx).Save(context.Background(), rec)

		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.Contains(t, saveIdempotencyKey, "expires_at <= EXCLUDED.created_at")
		dbtx.AssertExpectations(t)
	})
}

func newGuest(t *testing.T) *user.User {
	t.Helper()
	email, err := user.NewEmail("guest@example.com")
	require.NoError(t, err)
	return user.NewUser(email, "hash", user.RoleGuest, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
}
