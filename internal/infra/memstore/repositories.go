package memstore

import (
	"context"
	"sort"
	"time"

	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in a read-only transaction")

type roomRepo struct{ tx *memTx }

func (r roomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.tx.data.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	return rm, nil
}

// FindByIDForUpdate needs no extra locking: Within already holds the writer lock.
func (r roomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return r.FindByID(ctx, id)
}

func (r roomRepo) FindActive(_ context.Context) ([]*room.Room, error) {
	var out []*room.Room
	for _, rm := range r.tx.data.rooms {
		if rm.Active() {
			out = append(out, rm)
		}
	}
	return sortRooms(out), nil
}

func (r roomRepo) FindByType(_ context.Context, typeName string) ([]*room.Room, error) {
	var out []*room.Room
	for _, rm := range r.tx.data.rooms {
		if rm.Type().Name() == typeName {
			out = append(out, rm)
		}
	}
	return sortRooms(out), nil
}

func (r roomRepo) FindAll(_ context.Context) ([]*room.Room, error) {
	out := make([]*room.Room, 0, len(r.tx.data.rooms))
	for _, rm := range r.tx.data.rooms {
		out = append(out, rm)
	}
	return sortRooms(out), nil
}

func (r roomRepo) Save(_ context.Context, rm *room.Room) error {
	if err := r.tx.checkWritable("failed to save room"); err != nil {
		return err
	}
	for id, existing := range r.tx.data.rooms {
		if id != rm.ID() && existing.Number() == rm.Number() {
			return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "room number already exists", nil)
		}
	}
	r.tx.data.rooms[rm.ID()] = rm
	return nil
}

type roomTypeRepo struct{ tx *memTx }

func (r roomTypeRepo) FindByName(_ context.Context, name string) (room.Type, error) {
	t, ok := r.tx.data.roomTypes[name]
	if !ok {
		return room.Type{}, infra.NotFound("room type not found")
	}
	return t, nil
}

func (r roomTypeRepo) FindAll(_ context.Context) ([]room.Type, error) {
	out := make([]room.Type, 0, len(r.tx.data.roomTypes))
	for _, t := range r.tx.data.roomTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r roomTypeRepo) Save(_ context.Context, t room.Type) error {
	if err := r.tx.checkWritable("failed to save room type"); err != nil {
		return err
	}
	if _, exists := r.tx.data.roomTypes[t.Name()]; exists {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "room type already exists", nil)
	}
	r.tx.data.roomTypes[t.Name()] = t
	return nil
}

type reservationRepo struct{ tx *memTx }

func (r reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.tx.data.reservations[id]
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return res, nil
}

func (r reservationRepo) FindByRoom(_ context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.tx.data.reservations {
		if res.RoomID() == roomID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period().CheckIn().Before(out[j].Period().CheckIn())
	})
	return out, nil
}

func (r reservationRepo) FindByGuest(_ context.Context, guestID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.tx.data.reservations {
		if res.GuestID() == guestID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

// Save mirrors the Postgres rules: foreign keys, the versioned upsert and the room/stay exclusion.
func (r reservationRepo) Save(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.checkWritable("failed to save reservation"); err != nil {
		return err
	}
	if _, ok := r.tx.data.rooms[res.RoomID()]; !ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindForeignKeyViolated, "reservation references unknown room", nil)
	}

	if stored, ok := r.tx.data.reservations[res.ID()]; ok {
		if stored.Version() != res.Version()-1 {
			return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "reservation version is stale", nil)
		}
	}

	if res.HoldsRoom() {
		for id, other := range r.tx.data.reservations {
			if id == res.ID() || other.RoomID() != res.RoomID() || !other.HoldsRoom() {
				continue
			}
			if other.Period().Overlaps(res.Period()) {
				return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "room is already booked for the period", nil)
			}
		}
	}

	r.tx.data.reservations[res.ID()] = res
	return nil
}

type userRepo struct{ tx *memTx }

func (r userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.tx.data.users {
		if u.Email().Value() == email {
			return u, nil
		}
	}
	return nil, infra.NotFound("user not found")
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.tx.data.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return u, nil
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.tx.checkWritable("failed to create user"); err != nil {
		return err
	}
	for _, existing := range r.tx.data.users {
		if existing.Email().Value() == u.Email().Value() {
			return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "email already registered", nil)
		}
	}
	r.tx.data.users[u.ID()] = u
	return nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	if err := r.tx.checkWritable("failed to update last login"); err != nil {
		return err
	}
	u, ok := r.tx.data.users[userID]
	if !ok {
		return infra.NotFound("user not found")
	}
	lastLogin := at
	r.tx.data.users[userID] = user.ReconstructUser(
		u.ID(), u.Email(), u.PasswordHash(), u.Role(), &lastLogin, u.IsActive(), u.CreatedAt(), at,
	)
	return nil
}

type couponRepo struct{ tx *memTx }

func (r couponRepo) FindByCode(_ context.Context, code coupon.Code) (*coupon.Coupon, error) {
	c, ok := r.tx.data.coupons[code.String()]
	if !ok {
		return nil, infra.NotFound("coupon not found")
	}
	return c, nil
}

type notificationRepo struct{ tx *memTx }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if err := r.tx.checkWritable("failed to enqueue notification"); err != nil {
		return err
	}
	r.tx.data.jobs = append(r.tx.data.jobs, Job{
		Kind:    kind,
		Topic:   topic,
		Payload: append([]byte(nil), payload...),
		RunAt:   runAt,
	})
	return nil
}

type idempotencyRepo struct{ tx *memTx }

func (r idempotencyRepo) Find(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.tx.data.idempotency[idempotencyID{key: key, userID: userID}]
	if !ok {
		return nil, infra.NotFound("idempotency key not found")
	}
	return &rec, nil
}

func (r idempotencyRepo) Save(_ context.Context, rec shared.IdempotencyRecord) error {
	if err := r.tx.checkWritable("failed to save idempotency key"); err != nil {
		return err
	}
	id := idempotencyID{key: rec.Key, userID: rec.UserID}
	if existing, ok := r.tx.data.idempotency[id]; ok && !existing.Expired(rec.CreatedAt) {
		return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "idempotency key is still live", nil)
	}
	r.tx.data.idempotency[id] = rec
	return nil
}
