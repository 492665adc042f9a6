package shared

import (
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/errs"
)

// Use-case failures. Each carries its taxonomy kind so the HTTP layer can map it without knowing the use case.
var (
	ErrInvalidInput        = errs.Define(errs.KindValidation, "INVALID_INPUT", "request validation failed")
	ErrRoomNotFound        = errs.Define(errs.KindNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrRoomTypeNotFound    = errs.Define(errs.KindNotFound, "ROOM_TYPE_NOT_FOUND", "room type not found")
	ErrReservationNotFound = errs.Define(errs.KindNotFound, "RESERVATION_NOT_FOUND", "reservation not found")
	ErrUserNotFound        = errs.Define(errs.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrCouponNotFound      = errs.Define(errs.KindNotFound, "COUPON_NOT_FOUND", "coupon not found")
	ErrRoomNotBookable     = errs.Define(errs.KindBusinessRule, "ROOM_NOT_BOOKABLE", "room is not open for booking")
	ErrCapacityExceeded    = errs.Define(errs.KindBusinessRule, "CAPACITY_EXCEEDED", "guest count exceeds room capacity")
	ErrRoomNotAvailable    = errs.Define(errs.KindConflict, "ROOM_NOT_AVAILABLE", "room is already booked for the requested period")
	ErrReservationModified = errs.Define(errs.KindConflict, "RESERVATION_MODIFIED", "reservation was modified concurrently, reload and retry")
	ErrRoomNumberTaken     = errs.Define(errs.KindConflict, "ROOM_NUMBER_TAKEN", "room number is already in use")
	ErrRoomTypeExists      = errs.Define(errs.KindConflict, "ROOM_TYPE_EXISTS", "room type already exists")
	ErrEmailTaken          = errs.Define(errs.KindConflict, "EMAIL_TAKEN", "email is already registered")
	ErrIdempotencyKeyReuse = errs.Define(errs.KindConflict, "IDEMPOTENCY_KEY_REUSED", "idempotency key was already used for a different request")
	ErrInvalidCredentials  = errs.Define(errs.KindAuthentication, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidToken        = errs.Define(errs.KindAuthentication, "INVALID_TOKEN", "invalid or expired token")
	ErrUserInactive        = errs.Define(errs.KindAuthentication, "USER_INACTIVE", "user account is disabled")
	ErrForbidden           = errs.Define(errs.KindAuthorization, "FORBIDDEN", "insufficient permissions for this operation")
	ErrStorageFailure      = errs.Define(errs.KindInfrastructure, "STORAGE_FAILURE", "storage operation failed")
)

// IsNotFound reports a repository lookup miss.
func IsNotFound(err error) bool {
	return err != nil && infra.IsKind(err, infra.KindNotFound)
}

// MapRepoErr translates a repository failure into the use-case error for a missing or conflicting record.
// Anything else is an infrastructure failure.
func MapRepoErr(err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case conflict != nil && (infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey)):
		return errs.Mark(err, conflict)
	case infra.IsKind(err, infra.KindDBFailure) && errs.KindOf(err) != errs.KindInfrastructure:
		// A stored row that fails domain validation is corrupt data, not bad client input.
		return errs.Seal(err, ErrStorageFailure)
	case errs.KindOf(err) != errs.KindInfrastructure:
		return err
	default:
		return errs.Mark(err, ErrStorageFailure)
	}
}
