package response

import (
	"time"

	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                  uuid.UUID      `json:"id"`
	RoomID              uuid.UUID      `json:"roomId"`
	GuestID             uuid.UUID      `json:"guestId"`
	CheckIn             time.Time      `json:"checkIn"`
	CheckOut            time.Time      `json:"checkOut"`
	Nights              int            `json:"nights"`
	State               string         `json:"state"`
	TotalPrice          MoneyResponse  `json:"totalPrice" copier:"-"`
	GuestCount          int            `json:"guestCount"`
	Notes               string         `json:"notes,omitempty"`
	CouponID            *uuid.UUID     `json:"couponId,omitempty"`
	CancellationReason  *string        `json:"cancellationReason,omitempty"`
	CancelledAt         *time.Time     `json:"cancelledAt,omitempty"`
	CancellationPenalty *MoneyResponse `json:"cancellationPenalty,omitempty" copier:"-"`
	RefundAmount        *MoneyResponse `json:"refundAmount,omitempty" copier:"-"`
	Version             int            `json:"version"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) ReservationResponse {
	var resp ReservationResponse
	mustCopy(&resp, v)
	resp.TotalPrice = FromMoneyView(v.TotalPrice)
	if v.CancellationPenalty != nil {
		penalty := FromMoneyView(*v.CancellationPenalty)
		resp.CancellationPenalty = &penalty
	}
	if v.RefundAmount != nil {
		refund := FromMoneyView(*v.RefundAmount)
		resp.RefundAmount = &refund
	}
	return resp
}

func FromReservationViews(list []*queries.ReservationView) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromReservationView(v))
	}
	return out
}
