package queries

import (
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/user"

	"github.com/google/uuid"
)

// Read models shared by commands and queries. They are plain data with no domain behavior.

type MoneyView struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func NewMoneyView(m money.Money) MoneyView {
	return MoneyView{Amount: m.Amount(), Currency: m.Currency()}
}

type RoomTypeView struct {
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	BaseRate  MoneyView `json:"baseRate"`
	Amenities []string  `json:"amenities"`
}

func NewRoomTypeView(t room.Type) RoomTypeView {
	return RoomTypeView{
		Name:      t.Name(),
		Capacity:  t.Capacity(),
		BaseRate:  NewMoneyView(t.BaseRate()),
		Amenities: t.Amenities(),
	}
}

type RoomView struct {
	ID        uuid.UUID    `json:"id"`
	Number    string       `json:"number"`
	Type      RoomTypeView `json:"type"`
	BasePrice MoneyView    `json:"basePrice"`
	Active    bool         `json:"active"`
	Floor     int          `json:"floor"`
	View      string       `json:"view"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func NewRoomView(r *room.Room) *RoomView {
	return &RoomView{
		ID:        r.ID(),
		Number:    r.Number(),
		Type:      NewRoomTypeView(r.Type()),
		BasePrice: NewMoneyView(r.BasePrice()),
		Active:    r.Active(),
		Floor:     r.Floor(),
		View:      r.View(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

type ReservationView struct {
	ID                  uuid.UUID  `json:"id"`
	RoomID              uuid.UUID  `json:"roomId"`
	GuestID             uuid.UUID  `json:"guestId"`
	CheckIn             time.Time  `json:"checkIn"`
	CheckOut            time.Time  `json:"checkOut"`
	Nights              int        `json:"nights"`
	State               string     `json:"state"`
	TotalPrice          MoneyView  `json:"totalPrice"`
	GuestCount          int        `json:"guestCount"`
	Notes               string     `json:"notes,omitempty"`
	CouponID            *uuid.UUID `json:"couponId,omitempty"`
	CancellationReason  *string    `json:"cancellationReason,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CancellationPenalty *MoneyView `json:"cancellationPenalty,omitempty"`
	RefundAmount        *MoneyView `json:"refundAmount,omitempty"`
	Version             int        `json:"version"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// NewReservationView fills the computed penalty and refund for cancelled reservations.
func NewReservationView(res *reservation.Reservation) (*ReservationView, error) {
	view := &ReservationView{
		ID:          res.ID(),
		RoomID:      res.RoomID(),
		GuestID:     res.GuestID(),
		CheckIn:     res.Period().CheckIn(),
		CheckOut:    res.Period().CheckOut(),
		Nights:      res.Period().Nights(),
		State:       res.State().String(),
		TotalPrice:  NewMoneyView(res.TotalPrice()),
		GuestCount:  res.GuestCount(),
		Notes:       res.Notes().String(),
		CouponID:    res.CouponID(),
		CancelledAt: res.CancelledAt(),
		Version:     res.Version(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}

	if res.State() != reservation.StateCancelled {
		return view, nil
	}

	if reason := res.CancellationReason(); reason != nil {
		s := reason.String()
		view.CancellationReason = &s
	}
	penalty, err := res.CancellationPenalty()
	if err != nil {
		return nil, err
	}
	refund, err := res.RefundAmount()
	if err != nil {
		return nil, err
	}
	penaltyView := NewMoneyView(penalty)
	refundView := NewMoneyView(refund)
	view.CancellationPenalty = &penaltyView
	view.RefundAmount = &refundView
	return view, nil
}

func NewReservationViews(list []*reservation.Reservation) ([]*ReservationView, error) {
	views := make([]*ReservationView, 0, len(list))
	for _, res := range list {
		v, err := NewReservationView(res)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func NewUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		LastLogin: u.LastLogin(),
	}
}
