package converter

import (
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRow struct {
	ID                 uuid.UUID
	RoomID             uuid.UUID
	GuestID            uuid.UUID
	Stay               string
	CheckIn            time.Time
	CheckOut           time.Time
	State              string
	TotalPriceCents    int64
	Currency           string
	GuestCount         int32
	Notes              string
	CancellationReason pgtype.Text
	CancelledAt        pgtype.Timestamptz
	CouponID           pgtype.UUID
	Version            int32
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ReservationToInfra(res *reservation.Reservation) ReservationRow {
	var reason *string
	if cr := res.CancellationReason(); cr != nil {
		s := cr.String()
		reason = &s
	}
	return ReservationRow{
		ID:                 res.ID(),
		RoomID:             res.RoomID(),
		GuestID:            res.GuestID(),
		Stay:               res.Period().ToTstzrange(),
		CheckIn:            res.Period().CheckIn(),
		CheckOut:           res.Period().CheckOut(),
		State:              res.State().String(),
		TotalPriceCents:    res.TotalPrice().Cents(),
		Currency:           res.TotalPrice().Currency(),
		GuestCount:         int32(res.GuestCount()), // #nosec G115 -- guest count is at most 10
		Notes:              res.Notes().String(),
		CancellationReason: pgconv.StringPtrToPgtype(reason),
		CancelledAt:        pgconv.TimePtrToPgtype(res.CancelledAt()),
		CouponID:           pgconv.UUIDPtrToPgtype(res.CouponID()),
		Version:            int32(res.Version()), // #nosec G115 -- versions stay far below MaxInt32
		CreatedAt:          res.CreatedAt(),
		UpdatedAt:          res.UpdatedAt(),
	}
}

func ReservationFromInfra(row ReservationRow) (*reservation.Reservation, error) {
	stay, err := period.Reconstruct(row.CheckIn, row.CheckOut)
	if err != nil {
		return nil, err
	}
	state, err := reservation.NewState(row.State)
	if err != nil {
		return nil, err
	}
	price, err := money.New(row.TotalPriceCents, row.Currency)
	if err != nil {
		return nil, err
	}
	notes, err := reservation.NewNote(row.Notes)
	if err != nil {
		return nil, err
	}

	var reason *reservation.CancellationReason
	if s := pgconv.StringPtrFromPgtype(row.CancellationReason); s != nil {
		cr, err := reservation.NewCancellationReason(*s)
		if err != nil {
			return nil, err
		}
		reason = &cr
	}

	return reservation.Reconstruct(reservation.ReconstructParams{
		ID:                 row.ID,
		RoomID:             row.RoomID,
		GuestID:            row.GuestID,
		Period:             stay,
		State:              state,
		TotalPrice:         price,
		GuestCount:         int(row.GuestCount),
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CouponID:           pgconv.UUIDPtrFromPgtype(row.CouponID),
		Version:            int(row.Version),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}), nil
}
