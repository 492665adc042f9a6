package room

import (
	"slices"
	"strings"

	"hotel-reservation/internal/domain/money"
)

// Type is a room category. Rooms hold a copy, never a reference.
type Type struct {
	name      string
	capacity  int
	baseRate  money.Money
	amenities []string
}

func NewType(name string, capacity int, baseRate money.Money, amenities []string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(name) > 50 {
		return Type{}, ErrInvalidTypeName
	}
	if capacity <= 0 {
		return Type{}, ErrInvalidCapacity
	}
	cleaned := make([]string, 0, len(amenities))
	for _, a := range amenities {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	return Type{
		name:      name,
		capacity:  capacity,
		baseRate:  baseRate,
		amenities: cleaned,
	}, nil
}

func (t Type) Name() string          { return t.name }
func (t Type) Capacity() int         { return t.capacity }
func (t Type) BaseRate() money.Money { return t.baseRate }

// Amenities returns a copy in their configured order.
func (t Type) Amenities() []string {
	return slices.Clone(t.amenities)
}

func (t Type) Fits(guestCount int) bool {
	return guestCount <= t.capacity
}
