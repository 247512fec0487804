// Package validation checks wine records at the write boundary using
// go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is the sentinel every *Error matches with errors.Is.
var ErrValidation = errors.New("validation failed")

// Error lists failing fields keyed by their JSON path, e.g. "palate.body".
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold for *Error.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// enumerated is implemented by every closed vocabulary type.
type enumerated interface {
	Valid() bool
}

// Validator wraps go-playground/validator with field-path errors.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports JSON field names and understands
// the "enum" tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumerated)
		return ok && e.Valid()
	})

	return &Validator{v: v}
}

// Validate checks s and returns *Error when any field fails.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[fieldPath(e.Namespace())] = friendlyMessage(e)
	}
	return &Error{Fields: fields}
}

// fieldPath drops the root struct name from a namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

//nolint:gocyclo // one case per supported tag
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "enum":
		return fmt.Sprintf("%q is not an allowed value", e.Value())
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gtefield":
		return "must not be before " + e.Param()
	default:
		return "is invalid"
	}
}
