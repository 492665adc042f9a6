package request

import (
	"strings"

	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID     uuid.UUID  `json:"roomId" binding:"required"`
	GuestID    *uuid.UUID `json:"guestId,omitempty"`
	CheckIn    Date       `json:"checkIn"`
	CheckOut   Date       `json:"checkOut"`
	GuestCount int        `json:"guestCount" binding:"required,min=1,max=10"`
	Notes      string     `json:"notes,omitempty" binding:"max=500"`
	CouponCode *string    `json:"couponCode,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationCommand {
	cmd := commands.CreateReservationCommand{
		RoomID:     r.RoomID,
		CheckIn:    r.CheckIn.Time,
		CheckOut:   r.CheckOut.Time,
		GuestCount: r.GuestCount,
		Notes:      strings.TrimSpace(r.Notes),
	}
	if r.GuestID != nil {
		cmd.GuestID = *r.GuestID
	}
	if r.CouponCode != nil {
		cmd.CouponCode = strings.TrimSpace(*r.CouponCode)
	}
	return cmd
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (r CancelReservationRequest) ToCommand(id uuid.UUID) commands.CancelReservationCommand {
	return commands.CancelReservationCommand{ReservationID: id, Reason: r.Reason}
}

// AvailabilityRequest is bound from the query string.
type AvailabilityRequest struct {
	CheckIn     string   `form:"checkIn" binding:"required"`
	CheckOut    string   `form:"checkOut" binding:"required"`
	RoomType    string   `form:"roomType"`
	MinCapacity int      `form:"minCapacity" binding:"omitempty,min=1"`
	MaxPrice    *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
}

func (r AvailabilityRequest) ToQuery() (queries.AvailabilityQuery, error) {
	checkIn, err := ParseDate(r.CheckIn)
	if err != nil {
		return queries.AvailabilityQuery{}, err
	}
	checkOut, err := ParseDate(r.CheckOut)
	if err != nil {
		return queries.AvailabilityQuery{}, err
	}
	return queries.AvailabilityQuery{
		CheckIn:     checkIn.Time,
		CheckOut:    checkOut.Time,
		RoomType:    r.RoomType,
		MinCapacity: r.MinCapacity,
		MaxPrice:    r.MaxPrice,
	}, nil
}
