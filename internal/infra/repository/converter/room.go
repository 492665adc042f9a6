package converter

import (
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/room"

	"github.com/google/uuid"
)

type RoomRow struct {
	ID                uuid.UUID
	Number            string
	TypeName          string
	TypeCapacity      int32
	TypeBaseRateCents int64
	TypeAmenities     []string
	BasePriceCents    int64
	Currency          string
	Active            bool
	Floor             int32
	View              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type RoomTypeRow struct {
	Name          string
	Capacity      int32
	BaseRateCents int64
	Currency      string
	Amenities     []string
}

func RoomToInfra(r *room.Room) RoomRow {
	t := r.Type()
	return RoomRow{
		ID:                r.ID(),
		Number:            r.Number(),
		TypeName:          t.Name(),
		TypeCapacity:      int32(t.Capacity()), // #nosec G115 -- capacity is validated positive and small
		TypeBaseRateCents: t.BaseRate().Cents(),
		TypeAmenities:     t.Amenities(),
		BasePriceCents:    r.BasePrice().Cents(),
		Currency:          r.BasePrice().Currency(),
		Active:            r.Active(),
		Floor:             int32(r.Floor()), // #nosec G115 -- floor is a small positive number
		View:              r.View(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}
}

func RoomFromInfra(row RoomRow) (*room.Room, error) {
	rate, err := money.New(row.TypeBaseRateCents, row.Currency)
	if err != nil {
		return nil, err
	}
	roomType, err := room.NewType(row.TypeName, int(row.TypeCapacity), rate, row.TypeAmenities)
	if err != nil {
		return nil, err
	}
	price, err := money.New(row.BasePriceCents, row.Currency)
	if err != nil {
		return nil, err
	}
	return room.Reconstruct(
		row.ID,
		row.Number,
		roomType,
		price,
		row.Active,
		int(row.Floor),
		row.View,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func RoomTypeToInfra(t room.Type) RoomTypeRow {
	return RoomTypeRow{
		Name:          t.Name(),
		Capacity:      int32(t.Capacity()), // #nosec G115 -- capacity is validated positive and small
		BaseRateCents: t.BaseRate().Cents(),
		Currency:      t.BaseRate().Currency(),
		Amenities:     t.Amenities(),
	}
}

func RoomTypeFromInfra(row RoomTypeRow) (room.Type, error) {
	rate, err := money.New(row.BaseRateCents, row.Currency)
	if err != nil {
		return room.Type{}, err
	}
	return room.NewType(row.Name, int(row.Capacity), rate, row.Amenities)
}
