//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-reservation/internal/handler/dto/request"
	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID       uuid.UUID
	Number   string
	TypeName string
	Capacity int
	Price    float64
	Floor    int
	Active   bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:       uuid.New(),
		Number:   "101",
		TypeName: "deluxe",
		Capacity: 2,
		Price:    150,
		Floor:    1,
		Active:   true,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

func (r *RoomBuilder) BuildDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Number:   r.Number,
		TypeName: r.TypeName,
		Floor:    r.Floor,
	}
}

func (r *RoomBuilder) BuildTypeDTO() reqdto.CreateRoomTypeRequest {
	return reqdto.CreateRoomTypeRequest{
		Name:      r.TypeName,
		Capacity:  r.Capacity,
		BaseRate:  r.Price,
		Amenities: []string{"wifi"},
	}
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	now := time.Now().UTC()
	price := queries.MoneyView{Amount: r.Price, Currency: "USD"}
	return &queries.RoomView{
		ID:     r.ID,
		Number: r.Number,
		Type: queries.RoomTypeView{
			Name:      r.TypeName,
			Capacity:  r.Capacity,
			BaseRate:  price,
			Amenities: []string{"wifi"},
		},
		BasePrice: price,
		Active:    r.Active,
		Floor:     r.Floor,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
