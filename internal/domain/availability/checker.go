package availability

import (
	"strings"

	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"

	"github.com/google/uuid"
)

// Checker answers whether a room is free for a stay. It scans the given reservations linearly,
// which suits a single property's booking volume.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

func (Checker) IsAvailable(r *room.Room, p period.Period, existing []*reservation.Reservation) bool {
	if !r.IsBookable() {
		return false
	}
	return !hasConflict(r.ID(), p, existing, uuid.Nil)
}

// HasConflict ignores the reservation with excludeID, typically the one being re-validated.
func (Checker) HasConflict(roomID uuid.UUID, p period.Period, existing []*reservation.Reservation, excludeID uuid.UUID) bool {
	return hasConflict(roomID, p, existing, excludeID)
}

// FindAvailableRooms keeps input order. typeFilter matches type names case-insensitively; empty matches every type.
func (c Checker) FindAvailableRooms(rooms []*room.Room, p period.Period, typeFilter string, existing []*reservation.Reservation) []*room.Room {
	typeFilter = strings.TrimSpace(typeFilter)
	available := make([]*room.Room, 0, len(rooms))
	for _, r := range rooms {
		if typeFilter != "" && !strings.EqualFold(r.Type().Name(), typeFilter) {
			continue
		}
		if c.IsAvailable(r, p, existing) {
			available = append(available, r)
		}
	}
	return available
}

func hasConflict(roomID uuid.UUID, p period.Period, existing []*reservation.Reservation, excludeID uuid.UUID) bool {
	for _, res := range existing {
		if res.RoomID() != roomID || !res.HoldsRoom() {
			continue
		}
		if excludeID != uuid.Nil && res.ID() == excludeID {
			continue
		}
		if res.Period().Overlaps(p) {
			return true
		}
	}
	return false
}
