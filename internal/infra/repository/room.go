package repository

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const roomColumns = `id, number, type_name, type_capacity, type_base_rate_cents, type_amenities,
	base_price_cents, currency, active, floor, view, created_at, updated_at`

const (
	selectRoomByID          = `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	selectRoomByIDForUpdate = `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`
	selectActiveRooms       = `SELECT ` + roomColumns + ` FROM rooms WHERE active ORDER BY number`
	selectRoomsByType       = `SELECT ` + roomColumns + ` FROM rooms WHERE type_name = $1 ORDER BY number`
	selectAllRooms          = `SELECT ` + roomColumns + ` FROM rooms ORDER BY number`
	upsertRoom              = `INSERT INTO rooms (` + roomColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
	base_price_cents = EXCLUDED.base_price_cents,
	currency = EXCLUDED.currency,
	active = EXCLUDED.active,
	floor = EXCLUDED.floor,
	view = EXCLUDED.view,
	updated_at = EXCLUDED.updated_at`
)

type RoomRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewRoomRepository(dbtx db.DBTX) *RoomRepository {
	return &RoomRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := scanRoom(r.db.QueryRow(ctx, selectRoomByID, id))
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to find room", err)
	}
	return rm, nil
}

func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := scanRoom(r.db.QueryRow(ctx, selectRoomByIDForUpdate, id))
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to lock room", err)
	}
	return rm, nil
}

func (r *RoomRepository) FindActive(ctx context.Context) ([]*room.Room, error) {
	return r.list(ctx, "failed to list active rooms", selectActiveRooms)
}

func (r *RoomRepository) FindByType(ctx context.Context, typeName string) ([]*room.Room, error) {
	return r.list(ctx, "failed to list rooms by type", selectRoomsByType, typeName)
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*room.Room, error) {
	return r.list(ctx, "failed to list rooms", selectAllRooms)
}

func (r *RoomRepository) Save(ctx context.Context, rm *room.Room) error {
	row := converter.RoomToInfra(rm)
	_, err := r.db.Exec(ctx, upsertRoom,
		row.ID, row.Number, row.TypeName, row.TypeCapacity, row.TypeBaseRateCents, row.TypeAmenities,
		row.BasePriceCents, row.Currency, row.Active, row.Floor, row.View, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgError(r.logger, "failed to save room", err)
	}
	return nil
}

func (r *RoomRepository) list(ctx context.Context, msg, query string, args ...any) ([]*room.Room, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, msg, err)
	}
	rooms, err := collect(rows, scanRoom)
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, msg, err)
	}
	return rooms, nil
}

func scanRoom(s rowScanner) (*room.Room, error) {
	var row converter.RoomRow
	if err := s.Scan(
		&row.ID, &row.Number, &row.TypeName, &row.TypeCapacity, &row.TypeBaseRateCents, &row.TypeAmenities,
		&row.BasePriceCents, &row.Currency, &row.Active, &row.Floor, &row.View, &row.CreatedAt, &row.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return converter.RoomFromInfra(row)
}
