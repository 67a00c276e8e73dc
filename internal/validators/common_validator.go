package validators

import (
	"fmt"
	"strings"

	"boleia/internal/utils"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("mz_phone", validateMZPhone)
	validate.RegisterValidation("province", validateProvince)
	validate.RegisterValidation("license_plate", validateLicensePlate)
}

func validateMZPhone(fl validator.FieldLevel) bool {
	return utils.IsValidPhone(fl.Field().String())
}

func validateProvince(fl validator.FieldLevel) bool {
	return utils.IsValidProvince(fl.Field().String())
}

func validateLicensePlate(fl validator.FieldLevel) bool {
	return utils.IsValidLicensePlate(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Details projects the errors onto the map shape the error envelope
// carries.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// ValidateStruct runs the tag-level validation and maps the failures
// onto field messages.
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(fieldErr.Field()),
				Message: errorMessage(fieldErr),
			})
		}
	}

	return validationErrors
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "url":
		return "must be a valid URL"
	case "mz_phone":
		return "must be a Mozambican phone number (+258 8X XXX XXXX)"
	case "province":
		return "must be a Mozambican province"
	case "license_plate":
		return "must be a valid license plate (AAA 999 AA)"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

func fieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
