package queries

import (
	"context"
	"math"
	"strings"
	"time"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"
)

type AvailabilityQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
	RoomType string
	// MinCapacity of 0 means no filter.
	MinCapacity int
	// MaxPrice caps the nightly base price; nil means no cap.
	MaxPrice *float64
}

type AvailableRoomView struct {
	Room         *RoomView `json:"room"`
	TotalPrice   MoneyView `json:"totalPrice"`
	TotalWithTax MoneyView `json:"totalWithTax"`
}

type AvailabilityResult struct {
	CheckIn  time.Time            `json:"checkIn"`
	CheckOut time.Time            `json:"checkOut"`
	Nights   int                  `json:"nights"`
	Rooms    []*AvailableRoomView `json:"rooms"`
}

type AvailabilityQueries interface {
	QueryAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error)
}

type availabilityQueriesImpl struct {
	uow        shared.UnitOfWork
	checker    *availability.Checker
	calculator pricing.Calculator
	clock      clock.Clock
	taxPercent float64
}

func NewAvailabilityQueries(
	uow shared.UnitOfWork,
	checker *availability.Checker,
	calculator pricing.Calculator,
	clock clock.Clock,
	taxPercent float64,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:        uow,
		checker:    checker,
		calculator: calculator,
		clock:      clock,
		taxPercent: taxPercent,
	}
}

func (q *availabilityQueriesImpl) QueryAvailability(ctx context.Context, in AvailabilityQuery) (*AvailabilityResult, error) {
	if in.MinCapacity < 0 || (in.MaxPrice != nil && *in.MaxPrice < 0) {
		return nil, shared.ErrInvalidInput
	}
	stay, err := period.New(in.CheckIn, in.CheckOut, q.clock.Now())
	if err != nil {
		return nil, err
	}
	typeFilter := strings.ToLower(strings.TrimSpace(in.RoomType))

	var (
		candidates []*room.Room
		existing   []*reservation.Reservation
	)
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if typeFilter != "" {
			candidates, err = tx.Rooms().FindByType(ctx, typeFilter)
		} else {
			candidates, err = tx.Rooms().FindActive(ctx)
		}
		if err != nil {
			return shared.MapRepoErr(err, nil, nil)
		}

		for _, r := range candidates {
			held, err := tx.Reservations().FindByRoom(ctx, r.ID())
			if err != nil {
				return shared.MapRepoErr(err, nil, nil)
			}
			existing = append(existing, held...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		CheckIn:  stay.CheckIn(),
		CheckOut: stay.CheckOut(),
		Nights:   stay.Nights(),
		Rooms:    []*AvailableRoomView{},
	}
	for _, r := range q.checker.FindAvailableRooms(candidates, stay, typeFilter, existing) {
		if in.MinCapacity > 0 && r.Type().Capacity() < in.MinCapacity {
			continue
		}
		if in.MaxPrice != nil {
			limit, err := money.FromMajor(*in.MaxPrice, r.BasePrice().Currency())
			// A cap past the largest representable amount filters nothing.
			if errs.Is(err, money.ErrAmountOverflow) {
				limit, err = money.New(math.MaxInt64, r.BasePrice().Currency())
			}
			if err != nil {
				return nil, err
			}
			if within, err := r.BasePrice().LessThanOrEqual(limit); err != nil || !within {
				continue
			}
		}

		total, err := q.calculator.Price(r, stay)
		if err != nil {
			return nil, err
		}
		withTax, err := q.calculator.PriceWithTax(total, q.taxPercent)
		if err != nil {
			return nil, err
		}
		result.Rooms = append(result.Rooms, &AvailableRoomView{
			Room:         NewRoomView(r),
			TotalPrice:   NewMoneyView(total),
			TotalWithTax: NewMoneyView(withTax),
		})
	}
	return result, nil
}
