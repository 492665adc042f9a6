package reservation

import (
	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock   clock.Clock
	Pricing pricing.Calculator
}

func NewFactory(clock clock.Clock, calc pricing.Calculator) *Factory {
	return &Factory{
		Clock:   clock,
		Pricing: calc,
	}
}

// CreateReservation prices the stay and builds a pending reservation.
// Bookability, availability and capacity are the caller's checks.
func (f *Factory) CreateReservation(
	roomEntity *room.Room,
	guestID uuid.UUID,
	stay period.Period,
	guestCount int,
	couponEntity *coupon.Coupon,
	notes Note,
) (*Reservation, error) {
	now := f.Clock.Now()

	var (
		price    money.Money
		couponID *uuid.UUID
		err      error
	)
	if couponEntity != nil {
		if err = couponEntity.ValidateUsage(now); err != nil {
			return nil, err
		}
		price, err = f.Pricing.PriceWithDiscount(roomEntity, stay, couponEntity.PercentOff())
		id := couponEntity.ID()
		couponID = &id
	} else {
		price, err = f.Pricing.Price(roomEntity, stay)
	}
	if err != nil {
		return nil, err
	}

	return New(NewParams{
		RoomID:     roomEntity.ID(),
		GuestID:    guestID,
		Period:     stay,
		TotalPrice: price,
		GuestCount: guestCount,
		Notes:      notes,
		CouponID:   couponID,
	}, now)
}
