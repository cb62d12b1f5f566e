package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	structValidator *Validator
	structOnce      sync.Once
)

// GetValidator returns the shared struct validator
func GetValidator() *Validator {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("entitytype", validateEntityType)
		structValidator = &Validator{validate: v}
	})
	return structValidator
}

func validateEntityType(fl validator.FieldLevel) bool {
	return domain.EntityType(fl.Field().String()).Valid()
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateClaimRequest checks an outbound claim payload before it is sent.
// A failure here means the allocation engine produced something malformed.
func (v *Validator) ValidateClaimRequest(req domain.ClaimRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, summarize(err))
	}
	return nil
}

// FormatValidationError formats validation errors into a field to message map
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
		field := e.Namespace()
		switch e.Tag() {
		case "required", "required_if":
			errs[field] = "This field is required"
		case "gt", "gte", "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "oneof", "entitytype":
			errs[field] = "Invalid entity type"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func summarize(err error) string {
	fields := FormatValidationError(err)
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
