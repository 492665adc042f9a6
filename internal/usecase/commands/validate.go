package commands

import (
	"fmt"

	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateCommand checks the shape of a command before any repository is touched.
func validateCommand(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errs.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errs.WithDetail(errs.Mark(err, shared.ErrInvalidInput), fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag()))
	}
	return errs.Mark(err, shared.ErrInvalidInput)
}
