package repository

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	selectIdempotencyKey = `SELECT key, user_id, request_hash, reservation_id, expires_at, created_at
FROM idempotency_keys WHERE key = $1 AND user_id = $2`

	// An expired key may be claimed again; a live one is left alone and reported as a conflict.
	saveIdempotencyKey = `INSERT INTO idempotency_keys (key, user_id, request_hash, reservation_id, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (key, user_id) DO UPDATE SET
	request_hash = EXCLUDED.request_hash,
	reservation_id = EXCLUDED.reservation_id,
	expires_at = EXCLUDED.expires_at,
	created_at = EXCLUDED.created_at
WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`
)

type IdempotencyRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

func (r *IdempotencyRepository) Find(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, selectIdempotencyKey, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.RequestHash, &rec.ReservationID, &rec.ExpiresAt, &rec.CreatedAt,
	)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to find idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) Save(ctx context.Context, rec shared.IdempotencyRecord) error {
	tag, err := r.db.Exec(ctx, saveIdempotencyKey,
		rec.Key, rec.UserID, rec.RequestHash, rec.ReservationID, rec.ExpiresAt, rec.CreatedAt,
	)
	if err != nil {
		return infra.ClassifyPgError(r.logger, "failed to save idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "idempotency key is still live", nil)
	}
	return nil
}
