package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxGroupWidth bounds the work-items of one thread group
	MaxGroupWidth = 1024
)

func init() {
	validate = validator.New()
	// Report fields by their YAML key so messages match the config file.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Struct validates v against its `validate` struct tags.
func Struct(v any) error {
	if v == nil {
		return errors.New("value to validate cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateGroupWidth validates a thread-group width
func ValidateGroupWidth(width int) error {
	if width < 1 {
		return fmt.Errorf("%w: group width must be at least 1, got %d", ErrInvalidConfig, width)
	}
	if width > MaxGroupWidth {
		return fmt.Errorf("%w: group width must not exceed %d, got %d", ErrInvalidConfig, MaxGroupWidth, width)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		param := e.Param()

		var msg string
		switch e.Tag() {
		case "required":
			msg = "field is required"
		case "min", "gte":
			msg = "must be at least " + param
		case "max", "lte":
			msg = "must not exceed " + param
		case "oneof":
			msg = "must be one of [" + param + "]"
		default:
			msg = "validation failed (" + e.Tag() + ")"
		}
		msgs = append(msgs, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, msg))
	}
	return errors.Join(msgs...)
}
