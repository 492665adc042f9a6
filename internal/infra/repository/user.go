package repository

import (
	"context"
	"log/slog"
	"time"

	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/db"
	"hotel-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userSelect = `SELECT id, email, password_hash, role, last_login, is_active, created_at, updated_at FROM users`

const (
	selectUserByEmail   = userSelect + ` WHERE email = $1`
	selectUserByID      = userSelect + ` WHERE id = $1`
	insertUser          = `INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	updateUserLastLogin = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
)

type UserRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, selectUserByEmail, email))
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, selectUserByID, id))
	if err != nil {
		return nil, infra.ClassifyPgError(r.logger, "failed to find user", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUser,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(), u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		return infra.ClassifyPgError(r.logger, "failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, updateUserLastLogin, userID, at)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("user not found")
	}
	return nil
}

func scanUser(s rowScanner) (*user.User, error) {
	var (
		id           uuid.UUID
		emailStr     string
		passwordHash string
		roleStr      string
		lastLogin    pgtype.Timestamptz
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := s.Scan(&id, &emailStr, &passwordHash, &roleStr, &lastLogin, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	email, err := user.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(roleStr)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, email, passwordHash, role, pgconv.TimePtrFromPgtype(lastLogin), isActive, createdAt, updatedAt), nil
}
