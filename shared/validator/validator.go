package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"salon/internal/scheduling"
	"salon/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerClockValidation(field val.FieldLevel) bool {
	return scheduling.IsValidTime(field.Field().String())
}

func registerDateValidation(field val.FieldLevel) bool {
	return scheduling.IsValidDate(field.Field().String())
}

func registerStatusValidation(field val.FieldLevel) bool {
	return scheduling.Status(field.Field().String()).Valid()
}

// registerNotBeforeValidation compares two YYYY-MM-DD fields, which order
// lexically. An empty counterpart always passes.
func registerNotBeforeValidation(field val.FieldLevel) bool {
	other := reflect.Indirect(field.Parent()).FieldByName(field.Param())
	if !other.IsValid() || other.String() == "" {
		return true
	}

	return field.Field().String() >= other.String()
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validations := map[string]val.Func{
		"clock":     registerClockValidation,
		"day":       registerDateValidation,
		"status":    registerStatusValidation,
		"notbefore": registerNotBeforeValidation,
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
