package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/pkg/validation"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.Get()}
}

// Validate satisfies the echo.Validator interface. Failures are domain
// validation errors listing one message per field.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, validation.FieldError(fe))
	}
	return domain.ValidationError("request", msgs)
}
