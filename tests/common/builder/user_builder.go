//go:build unit || e2e

package builder

import (
	"time"

	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         user.Role
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "guest@example.com",
		PasswordHash: "hashed_password",
		Role:         user.RoleGuest,
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return user.ReconstructUser(u.ID, email, u.PasswordHash, u.Role, nil, u.IsActive, now, now), nil
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role.String(),
		IsActive: u.IsActive,
	}
}

func (u *UserBuilder) WithRole(role user.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
