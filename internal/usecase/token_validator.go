package usecase

import (
	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/jwt"
	"hotel-reservation/internal/usecase/shared"
)

// TokenValidator turns a bearer token into the calling actor for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// ValidateToken accepts access tokens only; refresh tokens are good for /auth/refresh and nothing else.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, errs.Mark(err, shared.ErrInvalidToken)
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return shared.Actor{}, shared.ErrInvalidToken
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, shared.ErrInvalidToken
	}

	return shared.Actor{UserID: claims.UserID, Role: role}, nil
}
