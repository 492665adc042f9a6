package request

import "hotel-reservation/internal/usecase/commands"

type CreateRoomTypeRequest struct {
	Name      string   `json:"name" binding:"required,max=50"`
	Capacity  int      `json:"capacity" binding:"required,min=1"`
	BaseRate  float64  `json:"baseRate" binding:"gte=0"`
	Currency  string   `json:"currency,omitempty" binding:"omitempty,len=3"`
	Amenities []string `json:"amenities,omitempty"`
}

func (r CreateRoomTypeRequest) ToCommand() commands.CreateRoomTypeCommand {
	return commands.CreateRoomTypeCommand{
		Name:      r.Name,
		Capacity:  r.Capacity,
		BaseRate:  r.BaseRate,
		Currency:  r.Currency,
		Amenities: r.Amenities,
	}
}

type CreateRoomRequest struct {
	Number    string   `json:"number" binding:"required,max=20"`
	TypeName  string   `json:"type" binding:"required"`
	BasePrice *float64 `json:"basePrice,omitempty" binding:"omitempty,gte=0"`
	Floor     int      `json:"floor" binding:"required,min=1"`
	View      string   `json:"view,omitempty" binding:"max=50"`
}

func (r CreateRoomRequest) ToCommand() commands.CreateRoomCommand {
	return commands.CreateRoomCommand{
		Number:    r.Number,
		TypeName:  r.TypeName,
		BasePrice: r.BasePrice,
		Floor:     r.Floor,
		View:      r.View,
	}
}

type ChangeRoomPriceRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

type ListRoomsRequest struct {
	IncludeInactive bool `form:"includeInactive"`
}
