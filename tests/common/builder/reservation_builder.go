//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-reservation/internal/handler/dto/request"
	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID         uuid.UUID
	RoomID     uuid.UUID
	GuestID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	Notes      string
	State      string
	Nightly    float64
	Version    int
}

func NewReservationBuilder() *ReservationBuilder {
	checkIn := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 1, 0)
	return &ReservationBuilder{
		ID:         uuid.New(),
		RoomID:     uuid.New(),
		GuestID:    uuid.New(),
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 3),
		GuestCount: 2,
		State:      "pending",
		Nightly:    150,
		Version:    1,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:     r.RoomID,
		CheckIn:    reqdto.Date{Time: r.CheckIn},
		CheckOut:   reqdto.Date{Time: r.CheckOut},
		GuestCount: r.GuestCount,
		Notes:      r.Notes,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	nights := int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	now := time.Now().UTC()
	return &queries.ReservationView{
		ID:         r.ID,
		RoomID:     r.RoomID,
		GuestID:    r.GuestID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Nights:     nights,
		State:      r.State,
		TotalPrice: queries.MoneyView{Amount: r.Nightly * float64(nights), Currency: "USD"},
		GuestCount: r.GuestCount,
		Notes:      r.Notes,
		Version:    r.Version,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
