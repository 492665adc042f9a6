package repository

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const reservationSelect = `SELECT id, room_id, guest_id, lower(stay), upper(stay), state,
	total_price_cents, currency, guest_count, notes, cancellation_reason, cancelled_at,
	coupon_id, version, created_at, updated_at
FROM reservations`

const (
	selectReservationByID     = reservationSelect + ` WHERE id = $1`
	selectReservationsByRoom  = reservationSelect + ` WHERE room_id = $1 ORDER BY lower(stay)`
	selectReservationsByGuest = reservationSelect + ` WHERE guest_id = $1 ORDER BY created_at DESC`

	// The update only applies on top of the immediate predecessor version.
	saveReservation = `INSERT INTO reservations (
	id, room_id, guest_id, stay, state, total_price_cents, currency, guest_count, notes,
	cancellation_reason, cancelled_at, coupon_id, version, created_at, updated_at
) VALUES ($1, $2, $3, $4::tstzrange, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
	state = EXCLUDED.state,
	total_price_cents = EXCLUDED.total_price_cents,
	currency = EXCLUDED.currency,
	notes = EXCLUDED.notes,
	cancellation_reason = EXCLUDED.cancellation_reason,
	cancelled_at = EXCLUDED.cancelled_at,
	version = EXCLUDED.version,
	updated_at = EXCLUDED.updated_at
WHERE reservations.version = EXCLUDED.version - 1`
)

type ReservationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, selectReservationByID, id))
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list reservations by room", selectReservationsByRoom, roomID)
}

func (r *ReservationRepository) FindByGuest(ctx context.Context, guestID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list reservations by guest", selectReservationsByGuest, guestID)
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	row := converter.ReservationToInfra(res)
	tag, err := r.db.Exec(ctx, saveReservation,
		row.ID, row.RoomID, row.GuestID, row.Stay, row.State, row.TotalPriceCents, row.Currency,
		row.GuestCount, row.Notes, row.CancellationReason, row.CancelledAt, row.CouponID,
		row.Version, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgError(r.logger, "failed to save reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "reservation version is stale", nil)
	}
	return nil
}

func (r *ReservationRepository) list(ctx context.Context, msg, query string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, msg, err)
	}
	list, err := collect(rows, scanReservation)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, msg, err)
	}
	return list, nil
}

func scanReservation(s rowScanner) (*reservation.Reservation, error) {
	var row converter.ReservationRow
	if err := s.Scan(
		&row.ID, &row.RoomID, &row.GuestID, &row.CheckIn, &row.CheckOut, &row.State,
		&row.TotalPriceCents, &row.Currency, &row.GuestCount, &row.Notes, &row.CancellationReason, &row.CancelledAt,
		&row.CouponID, &row.Version, &row.CreatedAt, &row.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return converter.ReservationFromInfra(row)
}
