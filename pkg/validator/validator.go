package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// FieldErrors maps field names (JSON names) to a human-readable message.
// Fields keeps the encounter order so callers can focus the first invalid
// field.
type FieldErrors struct {
	Fields   []string
	Messages map[string]string
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, e.Messages[f])
	}
	return strings.Join(parts, "; ")
}

// First returns the name of the first invalid field, or empty.
func (e *FieldErrors) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

func NewValidator() *Validator {
	v := validator.New()

	// Use JSON tag names instead of struct field names for error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Validate(i interface{}) error {
	return v.translate(v.validate.Struct(i))
}

// ValidatePartial validates only the named struct fields (Go field names),
// used for step-scoped form validation.
func (v *Validator) ValidatePartial(i interface{}, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return v.translate(v.validate.StructPartial(i, fields...))
}

func (v *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return formatValidationErrors(validationErrs)
	}
	return err
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	fieldErrs := &FieldErrors{Messages: make(map[string]string)}

	for _, err := range errs {
		field := err.Field()

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of %s", field, err.Param())
		default:
			message = fmt.Sprintf("%s failed validation for %s", field, err.Tag())
		}

		if _, ok := fieldErrs.Messages[field]; !ok {
			fieldErrs.Fields = append(fieldErrs.Fields, field)
		}
		fieldErrs.Messages[field] = message
	}

	return fieldErrs
}
