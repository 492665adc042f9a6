package request

import "hotel-reservation/internal/usecase/commands"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r LoginRequest) ToCommand() commands.LoginCommand {
	return commands.LoginCommand{Email: r.Email, Password: r.Password}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (r RegisterRequest) ToCommand() commands.RegisterCommand {
	return commands.RegisterCommand{Email: r.Email, Password: r.Password}
}

// RefreshRequest may be empty when the refresh token travels in its cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
