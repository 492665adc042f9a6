//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/infra/memstore"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/jwt"
	"hotel-reservation/internal/pkg/password"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/shared"
	"hotel-reservation/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthCommands(t *testing.T) (commands.AuthCommands, *jwt.Service, *memstore.Store) {
	t.Helper()
	c := clock.NewMockClock(time.Now())
	store := memstore.NewStore()
	jwtService := jwt.NewServiceWithClock("test-secret-key-for-jwt-signing", 15*time.Minute, 24*time.Hour, c)
	return commands.NewAuthCommands(store, jwtService, c), jwtService, store
}

func TestAuthCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("register then log in", func(t *testing.T) {
		authCmds, jwtService, store := newAuthCommands(t)

		registered, err := authCmds.Register(ctx, commands.RegisterCommand{Email: "Guest@Example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "guest@example.com", registered.Principal.Email)
		assert.Equal(t, user.RoleGuest, registered.Principal.Role)

		loggedIn, err := authCmds.Login(ctx, commands.LoginCommand{Email: "guest@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, registered.Principal.UserID, loggedIn.Principal.UserID)

		claims, err := jwtService.ValidateToken(loggedIn.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
		assert.Equal(t, registered.Principal.UserID, claims.UserID)

		require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			u, err := tx.Users().FindByID(ctx, registered.Principal.UserID)
			require.NoError(t, err)
			assert.NotNil(t, u.LastLogin())
			return nil
		}))
	})

	t.Run("duplicate email is EmailTaken", func(t *testing.T) {
		authCmds, _, _ := newAuthCommands(t)
		_, err := authCmds.Register(ctx, commands.RegisterCommand{Email: "guest@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = authCmds.Register(ctx, commands.RegisterCommand{Email: "guest@example.com", Password: "password456"})

		assert.True(t, errs.Is(err, shared.ErrEmailTaken))
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("short password is a validation error", func(t *testing.T) {
		authCmds, _, _ := newAuthCommands(t)

		_, err := authCmds.Register(ctx, commands.RegisterCommand{Email: "guest@example.com", Password: "short"})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("wrong password is an authentication error", func(t *testing.T) {
		authCmds, _, _ := newAuthCommands(t)
		_, err := authCmds.Register(ctx, commands.RegisterCommand{Email: "guest@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = authCmds.Login(ctx, commands.LoginCommand{Email: "guest@example.com", Password: "wrong-password"})

		assert.True(t, errs.Is(err, shared.ErrInvalidCredentials))
		assert.Equal(t, errs.KindAuthentication, errs.KindOf(err))
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		authCmds, _, _ := newAuthCommands(t)

		_, err := authCmds.Login(ctx, commands.LoginCommand{Email: "nobody@example.com", Password: "password123"})

		assert.True(t, errs.Is(err, shared.ErrInvalidCredentials))
	})

	t.Run("disabled account", func(t *testing.T) {
		authCmds, _, store := newAuthCommands(t)
		hash, err := password.HashPassword("password123")
		require.NoError(t, err)
		disabled, err := builder.NewUserBuilder().AsInactive().With(func(u *builder.UserBuilder) {
			u.Email = "disabled@example.com"
			u.PasswordHash = hash
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Users().Create(ctx, disabled)
		}))

		_, err = authCmds.Login(ctx, commands.LoginCommand{Email: "disabled@example.com", Password: "wrong-password"})
		assert.True(t, errs.Is(err, shared.ErrInvalidCredentials), "a wrong password must not reveal the account state")
		assert.False(t, errs.Is(err, shared.ErrUserInactive))

		_, err = authCmds.Login(ctx, commands.LoginCommand{Email: "disabled@example.com", Password: "password123"})
		assert.True(t, errs.Is(err, shared.ErrUserInactive))
	})

	t.Run("refresh token issues a new pair", func(t *testing.T) {
		authCmds, jwtService, _ := newAuthCommands(t)
		registered, err := authCmds.Register(ctx, commands.RegisterCommand{Email: "guest@example.com", Password: "password123"})
		require.NoError(t, err)

		pair, err := authCmds.RefreshToken(ctx, registered.TokenPair.RefreshToken)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.Principal.UserID, claims.UserID)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		authCmds, _, _ := newAuthCommands(t)
		registered, err := authCmds.Register(ctx, commands.RegisterCommand{Email: "guest@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = authCmds.RefreshToken(ctx, registered.TokenPair.AccessToken)

		assert.True(t, errs.Is(err, shared.ErrInvalidToken))
	})

	t.Run("EnsureUser is idempotent", func(t *testing.T) {
		authCmds, _, _ := newAuthCommands(t)

		require.NoError(t, authCmds.EnsureUser(ctx, "admin@example.com", "admin-password", user.RoleAdmin))
		require.NoError(t, authCmds.EnsureUser(ctx, "admin@example.com", "admin-password", user.RoleAdmin))

		loggedIn, err := authCmds.Login(ctx, commands.LoginCommand{Email: "admin@example.com", Password: "admin-password"})
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, loggedIn.Principal.Role)
	})
}
