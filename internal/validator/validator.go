package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	ierr "github.com/vivahlink/console/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs struct-tag validation and converts failures into the
// console's validation error shape.
func ValidateRequest(req interface{}) error {
	if req == nil {
		return nil
	}

	err := instance().Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ierr.WithError(err).
			WithHint("Invalid request").
			Mark(ierr.ErrValidation)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return ierr.NewError("request validation failed").
		WithHint("One or more fields are invalid").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}
