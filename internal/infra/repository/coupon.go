package repository

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectCouponByCode = `SELECT id, code, percent_off, valid_from, valid_to FROM coupons WHERE code = $1`

type CouponRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	var (
		id         uuid.UUID
		codeStr    string
		percentOff pgtype.Numeric
		validFrom  pgtype.Timestamptz
		validTo    pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, selectCouponByCode, code.String()).Scan(&id, &codeStr, &percentOff, &validFrom, &validTo)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to find coupon", err)
	}

	pct, err := pgconv.Float64FromNumeric(percentOff)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read coupon percentage", err)
	}

	c, err := coupon.NewCoupon(id, codeStr, pct, pgconv.TimePtrFromPgtype(validFrom), pgconv.TimePtrFromPgtype(validTo))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored coupon is invalid", err)
	}
	return c, nil
}
