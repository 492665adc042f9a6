package shared

import (
	"hotel-reservation/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsStaff() bool {
	return a.Role.AtLeast(user.RoleStaff)
}

// Require fails with ErrForbidden unless the actor holds at least min.
func (a Actor) Require(min user.Role) error {
	if !a.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}

// CanAccess reports whether the actor may act on a record owned by ownerID.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.UserID == ownerID || a.IsStaff()
}
