package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks client input before it reaches the store.
// Field names in errors use the JSON names the client sent.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Quantity is free-form JSON; only its presence is checked.
	_ = v.RegisterValidation("truthy", func(fl validator.FieldLevel) bool {
		raw, _ := fl.Field().Interface().(json.RawMessage)
		return Truthy(raw)
	})
	return &RequestValidator{validate: v}
}

// Validate returns an error wrapping ErrInvalidInput that names every
// missing or empty field.
func (rv *RequestValidator) Validate(input any) error {
	err := rv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: missing or empty %s", ErrInvalidInput, strings.Join(fields, ", "))
}
