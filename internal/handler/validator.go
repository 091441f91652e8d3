package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/gamification"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator with the portal's custom tags
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("userid", validateUserID)
	_ = v.RegisterValidation("notification_kind", validateNotificationKind)
	_ = v.RegisterValidation("scenario", validateScenario)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError turns validator errors into a field -> message map
// keyed by the JSON-ish lower-case field name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "userid":
			errs[field] = "Must be a UUID"
		case "notification_kind":
			errs[field] = "Unsupported notification kind"
		case "scenario":
			errs[field] = "Unknown scenario"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte", "lte":
			errs[field] = "Out of range"
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateUserID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

func validateNotificationKind(fl validator.FieldLevel) bool {
	return domain.IsNotificationKind(domain.FrameType(fl.Field().String()))
}

func validateScenario(fl validator.FieldLevel) bool {
	return gamification.IsScenario(fl.Field().String())
}
