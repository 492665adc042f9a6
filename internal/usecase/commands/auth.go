package commands

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/domain/auth"
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/jwt"
	"hotel-reservation/internal/pkg/password"
	"hotel-reservation/internal/usecase/shared"
)

var errTokenGeneration = errs.New("token generation failed")

type LoginCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is the authenticated principal plus its freshly issued tokens.
type LoginResult struct {
	Principal auth.Principal
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
	Register(ctx context.Context, cmd RegisterCommand) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	// EnsureUser creates the account with the given role unless the email already exists.
	EnsureUser(ctx context.Context, email, plainPassword string, role user.Role) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(cmd.Email, cmd.Password)
	if err != nil {
		// Malformed credentials get the same answer as wrong ones.
		return nil, shared.ErrInvalidCredentials
	}

	var authenticated *user.User
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByEmail(ctx, credentials.Email().Value())
		if err != nil {
			return shared.MapRepoErr(err, shared.ErrInvalidCredentials, nil)
		}
		authenticated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The password is checked first so a wrong guess cannot tell a disabled account from a missing one.
	if err := password.ComparePassword(authenticated.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, errs.Mark(err, shared.ErrInvalidCredentials)
	}
	if !authenticated.IsActive() {
		return nil, shared.ErrUserInactive
	}

	pair, err := a.issueTokens(authenticated)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, authenticated.ID(), now)
	})
	if err != nil {
		// Login already succeeded; a stale last_login is not worth failing it.
		slog.Warn("failed to update last login", "user_id", authenticated.ID(), "error", err.Error())
	}

	return &LoginResult{Principal: principalOf(authenticated), TokenPair: pair}, nil
}

func (a *authCommandsImpl) Register(ctx context.Context, cmd RegisterCommand) (*LoginResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	created, err := a.createUser(ctx, cmd.Email, cmd.Password, user.RoleGuest)
	if err != nil {
		return nil, err
	}

	pair, err := a.issueTokens(created)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", created.ID())
	return &LoginResult{Principal: principalOf(created), TokenPair: pair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrInvalidToken)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, shared.ErrInvalidToken
	}

	// The role is re-read so a demoted account does not keep its old privileges.
	var current *user.User
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByID(ctx, claims.UserID)
		if err != nil {
			return shared.MapRepoErr(err, shared.ErrInvalidToken, nil)
		}
		current = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, shared.ErrUserInactive
	}

	return a.issueTokens(current)
}

func (a *authCommandsImpl) EnsureUser(ctx context.Context, email, plainPassword string, role user.Role) error {
	_, err := a.createUser(ctx, email, plainPassword, role)
	if errs.Is(err, shared.ErrEmailTaken) {
		return nil
	}
	if err == nil {
		slog.Info("seeded user account", "email", email, "role", role.String())
	}
	return err
}

func (a *authCommandsImpl) createUser(ctx context.Context, email, plainPassword string, role user.Role) (*user.User, error) {
	credentials, err := auth.NewCredentials(email, plainPassword)
	if err != nil {
		return nil, err
	}
	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, shared.ErrStorageFailure)
	}

	created := user.NewUser(credentials.Email(), hash, role, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.MapRepoErr(tx.Users().Create(ctx, created), nil, shared.ErrEmailTaken)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (a *authCommandsImpl) issueTokens(u *user.User) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, errTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, errTokenGeneration)
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func principalOf(u *user.User) auth.Principal {
	return auth.Principal{
		UserID: u.ID(),
		Email:  u.Email().Value(),
		Role:   u.Role(),
	}
}
