// Package memstore keeps the whole persistence model in process memory.
// It backs local demo runs and use-case tests with the same unit-of-work contract as Postgres.
package memstore

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"hotel-reservation/internal/domain/coupon"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// Job is a queued outbox row.
type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type state struct {
	rooms        map[uuid.UUID]*room.Room
	roomTypes    map[string]room.Type
	reservations map[uuid.UUID]*reservation.Reservation
	users        map[uuid.UUID]*user.User
	coupons      map[string]*coupon.Coupon
	idempotency  map[idempotencyID]shared.IdempotencyRecord
	jobs         []Job
}

type idempotencyID struct {
	key    uuid.UUID
	userID uuid.UUID
}

func newState() *state {
	return &state{
		rooms:        map[uuid.UUID]*room.Room{},
		roomTypes:    map[string]room.Type{},
		reservations: map[uuid.UUID]*reservation.Reservation{},
		users:        map[uuid.UUID]*user.User{},
		coupons:      map[string]*coupon.Coupon{},
		idempotency:  map[idempotencyID]shared.IdempotencyRecord{},
	}
}

// clone copies the indexes. Domain values are immutable, so sharing pointers is safe.
func (s *state) clone() *state {
	c := &state{
		rooms:        make(map[uuid.UUID]*room.Room, len(s.rooms)),
		roomTypes:    make(map[string]room.Type, len(s.roomTypes)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(s.reservations)),
		users:        make(map[uuid.UUID]*user.User, len(s.users)),
		coupons:      make(map[string]*coupon.Coupon, len(s.coupons)),
		idempotency:  make(map[idempotencyID]shared.IdempotencyRecord, len(s.idempotency)),
		jobs:         append([]Job(nil), s.jobs...),
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.roomTypes {
		c.roomTypes[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.coupons {
		c.coupons[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

// Store is an isolated in-memory database. Writers are serialized; readers see committed state only.
type Store struct {
	mu     sync.RWMutex
	data   *state
	logger *slog.Logger
}

func NewStore() *Store {
	return &Store{
		data:   newState(),
		logger: slog.Default(),
	}
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return store
}

// Within stages every write on a private copy and publishes it only when fn succeeds.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	staged := s.data.clone()
	if err := fn(ctx, &memTx{data: staged, logger: s.logger}); err != nil {
		return err
	}
	s.data = staged
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.RLock()
	snapshot := s.data
	s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{data: snapshot, readOnly: true, logger: s.logger})
}

// AddCoupon registers a coupon; coupons have no write path in the application.
func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	staged.coupons[c.Code().String()] = c
	s.data = staged
}

// Jobs returns the committed outbox rows in insertion order.
func (s *Store) Jobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Job(nil), s.data.jobs...)
}

type memTx struct {
	data     *state
	readOnly bool
	logger   *slog.Logger
}

func (t *memTx) Rooms() shared.RoomRepository               { return roomRepo{t} }
func (t *memTx) RoomTypes() shared.RoomTypeRepository       { return roomTypeRepo{t} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t} }
func (t *memTx) Users() shared.UserRepository               { return userRepo{t} }
func (t *memTx) Coupons() shared.CouponRepository           { return couponRepo{t} }
func (t *memTx) Notifications() shared.NotificationRepository {
	return notificationRepo{t}
}

func (t *memTx) Idempotency() shared.IdempotencyRepository { return idempotencyRepo{t} }

func (t *memTx) checkWritable(msg string) error {
	if t.readOnly {
		return infra.WrapRepoErr(t.logger, infra.KindDBFailure, msg, errReadOnly)
	}
	return nil
}

func sortRooms(rooms []*room.Room) []*room.Room {
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number() < rooms[j].Number() })
	return rooms
}
