package user

import (
	"regexp"
	"strings"

	"hotel-reservation/internal/pkg/errs"
)

var (
	ErrInvalidEmail    = errs.Define(errs.KindValidation, "INVALID_EMAIL", "invalid email format")
	ErrInvalidRole     = errs.Define(errs.KindValidation, "INVALID_ROLE", "invalid role")
	ErrPasswordTooWeak = errs.Define(errs.KindValidation, "PASSWORD_TOO_WEAK", "password must be at least 8 characters long")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
