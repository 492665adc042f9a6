package response

import (
	"time"

	"hotel-reservation/internal/domain/auth"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type PrincipalResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	TokenType    string            `json:"tokenType"`
	ExpiresIn    int64             `json:"expiresIn"`
	User         PrincipalResponse `json:"user"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func FromLoginResult(result *commands.LoginResult, accessTTL time.Duration) LoginResponse {
	return LoginResponse{
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
		User:         fromPrincipal(result.Principal),
	}
}

func FromTokenPair(pair *commands.TokenPair, accessTTL time.Duration) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
	}
}

func FromUserView(v *queries.UserView) UserResponse {
	var resp UserResponse
	mustCopy(&resp, v)
	return resp
}

func fromPrincipal(p auth.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:    p.UserID,
		Email: p.Email,
		Role:  p.Role.String(),
	}
}
