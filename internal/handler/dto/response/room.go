package response

import (
	"time"

	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type MoneyResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type RoomTypeResponse struct {
	Name      string        `json:"name"`
	Capacity  int           `json:"capacity"`
	BaseRate  MoneyResponse `json:"baseRate" copier:"-"`
	Amenities []string      `json:"amenities"`
}

type RoomResponse struct {
	ID        uuid.UUID        `json:"id"`
	Number    string           `json:"number"`
	Type      RoomTypeResponse `json:"type" copier:"-"`
	BasePrice MoneyResponse    `json:"basePrice" copier:"-"`
	Active    bool             `json:"active"`
	Floor     int              `json:"floor"`
	View      string           `json:"view,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type AvailableRoomResponse struct {
	Room         RoomResponse  `json:"room"`
	TotalPrice   MoneyResponse `json:"totalPrice"`
	TotalWithTax MoneyResponse `json:"totalWithTax"`
}

type AvailabilityResponse struct {
	CheckIn  time.Time               `json:"checkIn"`
	CheckOut time.Time               `json:"checkOut"`
	Nights   int                     `json:"nights"`
	Rooms    []AvailableRoomResponse `json:"rooms"`
}

func FromMoneyView(v queries.MoneyView) MoneyResponse {
	return MoneyResponse{Amount: v.Amount, Currency: v.Currency}
}

func FromRoomTypeView(v queries.RoomTypeView) RoomTypeResponse {
	var resp RoomTypeResponse
	mustCopy(&resp, &v)
	resp.BaseRate = FromMoneyView(v.BaseRate)
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	return resp
}

func FromRoomTypeViews(list []queries.RoomTypeView) []RoomTypeResponse {
	out := make([]RoomTypeResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromRoomTypeView(v))
	}
	return out
}

func FromRoomView(v *queries.RoomView) RoomResponse {
	var resp RoomResponse
	mustCopy(&resp, v)
	resp.Type = FromRoomTypeView(v.Type)
	resp.BasePrice = FromMoneyView(v.BasePrice)
	return resp
}

func FromRoomViews(list []*queries.RoomView) []RoomResponse {
	out := make([]RoomResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromRoomView(v))
	}
	return out
}

func FromAvailabilityResult(r *queries.AvailabilityResult) AvailabilityResponse {
	rooms := make([]AvailableRoomResponse, 0, len(r.Rooms))
	for _, ar := range r.Rooms {
		rooms = append(rooms, AvailableRoomResponse{
			Room:         FromRoomView(ar.Room),
			TotalPrice:   FromMoneyView(ar.TotalPrice),
			TotalWithTax: FromMoneyView(ar.TotalWithTax),
		})
	}
	return AvailabilityResponse{
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Nights:   r.Nights,
		Rooms:    rooms,
	}
}
