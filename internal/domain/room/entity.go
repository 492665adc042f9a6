package room

import (
	"strings"
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTypeName         = errs.Define(errs.KindValidation, "INVALID_ROOM_TYPE", "room type name is required")
	ErrInvalidCapacity         = errs.Define(errs.KindValidation, "INVALID_CAPACITY", "room capacity must be positive")
	ErrInvalidRoomNumber       = errs.Define(errs.KindValidation, "INVALID_ROOM_NUMBER", "room number is required")
	ErrInvalidFloor            = errs.Define(errs.KindValidation, "INVALID_FLOOR", "floor must be at least 1")
	ErrInvalidNights           = errs.Define(errs.KindValidation, "INVALID_NIGHTS", "nights must be positive")
	ErrInvalidStateTransition  = errs.Define(errs.KindBusinessRule, "INVALID_STATE_TRANSITION", "room is already in the requested state")
	ErrPriceCurrencyMismatched = errs.Define(errs.KindValidation, "ROOM_PRICE_CURRENCY", "room price currency must match its type")
)

type Room struct {
	id        uuid.UUID
	number    string
	roomType  Type
	basePrice money.Money
	active    bool
	floor     int
	view      string
	createdAt time.Time
	updatedAt time.Time
}

type NewParams struct {
	Number    string
	Type      Type
	BasePrice *money.Money
	Floor     int
	View      string
}

// New creates an active room. BasePrice defaults to the type's base rate.
func New(p NewParams, now time.Time) (*Room, error) {
	number := strings.TrimSpace(p.Number)
	if number == "" || len(number) > 20 {
		return nil, ErrInvalidRoomNumber
	}
	if p.Floor < 1 {
		return nil, ErrInvalidFloor
	}
	price := p.Type.BaseRate()
	if p.BasePrice != nil {
		if !p.BasePrice.SameCurrency(price) {
			return nil, ErrPriceCurrencyMismatched
		}
		price = *p.BasePrice
	}
	return &Room{
		id:        uuid.New(),
		number:    number,
		roomType:  p.Type,
		basePrice: price,
		active:    true,
		floor:     p.Floor,
		view:      strings.TrimSpace(p.View),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	number string,
	roomType Type,
	basePrice money.Money,
	active bool,
	floor int,
	view string,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		number:    number,
		roomType:  roomType,
		basePrice: basePrice,
		active:    active,
		floor:     floor,
		view:      view,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) IsBookable() bool {
	return r.active
}

func (r *Room) TotalPriceFor(nights int) (money.Money, error) {
	if nights <= 0 {
		return money.Money{}, ErrInvalidNights
	}
	return r.basePrice.Scale(float64(nights))
}

func (r *Room) Activate(now time.Time) (*Room, error) {
	if r.active {
		return nil, errs.WithDetail(ErrInvalidStateTransition, "room is already active")
	}
	next := r.clone(now)
	next.active = true
	return next, nil
}

func (r *Room) Deactivate(now time.Time) (*Room, error) {
	if !r.active {
		return nil, errs.WithDetail(ErrInvalidStateTransition, "room is already inactive")
	}
	next := r.clone(now)
	next.active = false
	return next, nil
}

func (r *Room) ChangePrice(price money.Money, now time.Time) *Room {
	next := r.clone(now)
	next.basePrice = price
	return next
}

func (r *Room) clone(now time.Time) *Room {
	next := *r
	next.updatedAt = now
	return &next
}

func (r *Room) ID() uuid.UUID          { return r.id }
func (r *Room) Number() string         { return r.number }
func (r *Room) Type() Type             { return r.roomType }
func (r *Room) BasePrice() money.Money { return r.basePrice }
func (r *Room) Active() bool           { return r.active }
func (r *Room) Floor() int             { return r.floor }
func (r *Room) View() string           { return r.view }
func (r *Room) CreatedAt() time.Time   { return r.createdAt }
func (r *Room) UpdatedAt() time.Time   { return r.updatedAt }
