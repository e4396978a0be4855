package validator

import (
	"fmt"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("time_of_day", validateTimeOfDay)

	return validator
}

// validateTimeOfDay accepts wall-clock times in "HH:MM" form.
func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := domain.ParseTimeOfDay(fl.Field().String())

	return err == nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must contain at least %s items or characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "url":
		return "must be a valid URL"
	case "time_of_day":
		return "must be a time of day in HH:MM format"
	default:
		return "is invalid"
	}
}
