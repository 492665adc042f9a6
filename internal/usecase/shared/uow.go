package shared

import (
	"context"
	"time"

	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for consistent multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Rooms() RoomRepository
	RoomTypes() RoomTypeRepository
	Reservations() ReservationRepository
	Users() UserRepository
	Coupons() CouponRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
}

// Lookups that miss return an error for which infra.IsKind(err, infra.KindNotFound) holds.

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// FindByIDForUpdate locks the room until the transaction ends, serializing bookings per room.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error)
	FindActive(ctx context.Context) ([]*room.Room, error)
	FindByType(ctx context.Context, typeName string) ([]*room.Room, error)
	FindAll(ctx context.Context) ([]*room.Room, error)
	Save(ctx context.Context, r *room.Room) error
}

type RoomTypeRepository interface {
	FindByName(ctx context.Context, name string) (room.Type, error)
	FindAll(ctx context.Context) ([]room.Type, error)
	Save(ctx context.Context, t room.Type) error
}

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error)
	FindByGuest(ctx context.Context, guestID uuid.UUID) ([]*reservation.Reservation, error)
	// Save inserts version 1 or replaces the stored predecessor version; anything else is a conflict.
	Save(ctx context.Context, r *reservation.Reservation) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type IdempotencyRepository interface {
	// Find returns the record for key scoped to userID, expired or not.
	Find(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	// Save inserts the record, replacing an expired one for the same key and user.
	Save(ctx context.Context, rec IdempotencyRecord) error
}
