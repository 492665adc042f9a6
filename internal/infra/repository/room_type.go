package repository

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/infra/repository/converter"
)

const (
	selectRoomTypeByName = `SELECT name, capacity, base_rate_cents, currency, amenities FROM room_types WHERE name = $1`
	selectAllRoomTypes   = `SELECT name, capacity, base_rate_cents, currency, amenities FROM room_types ORDER BY name`
	insertRoomType       = `INSERT INTO room_types (name, capacity, base_rate_cents, currency, amenities)
VALUES ($1, $2, $3, $4, $5)`
)

type RoomTypeRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewRoomTypeRepository(dbtx db.DBTX) *RoomTypeRepository {
	return &RoomTypeRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

func (r *RoomTypeRepository) FindByName(ctx context.Context, name string) (room.Type, error) {
	t, err := scanRoomType(r.db.QueryRow(ctx, selectRoomTypeByName, name))
	if err != nil {
		return room.Type{}, infra.ClassifyPgError(r.logger, "failed to find room type", err)
	}
	return t, nil
}

func (r *RoomTypeRepository) FindAll(ctx context.Context) ([]room.Type, error) {
	rows, err := r.db.Query(ctx, selectAllRoomTypes)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to list room types", err)
	}
	types, err := collect(rows, scanRoomType)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to list room types", err)
	}
	return types, nil
}

// Save inserts a new catalog entry; an existing name yields KindDuplicateKey.
func (r *RoomTypeRepository) Save(ctx context.Context, t room.Type) error {
	row := converter.RoomTypeToInfra(t)
	_, err := r.db.Exec(ctx, insertRoomType, row.Name, row.Capacity, row.BaseRateCents, row.Currency, row.Amenities)
	if err != nil {
		return infra.ClassifyPgError(r.logger, "failed to save room type", err)
	}
	return nil
}

func scanRoomType(s rowScanner) (room.Type, error) {
	var row converter.RoomTypeRow
	if err := s.Scan(&row.Name, &row.Capacity, &row.BaseRateCents, &row.Currency, &row.Amenities); err != nil {
		return room.Type{}, err
	}
	return converter.RoomTypeFromInfra(row)
}
