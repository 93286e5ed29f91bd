package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"venuebook/shared/constant"
	"venuebook/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const (
	tagWallTime = "walltime"
	tagISODate  = "isodate"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"oneof":    "{field} must be one of {param}",
	"uuid":     "{field} must be a valid UUID",
}

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	layouts := map[string]string{
		tagWallTime: constant.WallTimeFormat,
		tagISODate:  constant.DayFormat,
	}

	for tag, layout := range layouts {
		if err := v.RegisterValidation(tag, parsesAs(layout)); err != nil {
			panic(err)
		}
	}

	return v
}

func parsesAs(layout string) val.Func {
	return func(field val.FieldLevel) bool {
		value, ok := field.Field().Interface().(string)
		if !ok {
			return false
		}

		_, err := time.Parse(layout, value)

		return err == nil
	}
}

// Validate decodes a JSON body into data and validates the result.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return fail
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return toFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return toFailure(validate.Var(field, tag))
}

// toFailure maps date and time format violations onto their coded failures
// and everything else onto a readable bad request.
func toFailure(err error) error {
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	first := valErrors[0]

	switch first.Tag() {
	case tagISODate:
		return failure.InvalidDate
	case tagWallTime:
		return failure.InvalidTimeFormat(first.Field())
	}

	for _, valErr := range valErrors {
		if format, ok := messages[valErr.Tag()]; ok {
			return failure.BadRequestFromString(strings.NewReplacer(
				"{field}", valErr.Field(),
				"{param}", valErr.Param(),
			).Replace(format))
		}
	}

	return failure.BadRequestFromString(valErrors.Error())
}
