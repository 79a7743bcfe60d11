package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"shareit/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

// messages renders a violation per tag, {field} and {param} are substituted.
var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"gtfield":  "{field} must be after {param}",
	"max":      "{field} must be at most {param} long",
	"min":      "{field} must be at least {param} long",
	"oneof":    "{field} must be one of {param}",
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// violations are reported by their wire name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return v
}

func notBlank(field val.FieldLevel) bool {
	if str, ok := field.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}

	return !field.Field().IsZero()
}

// Validate decodes a json body into data and checks its validate tags.
// Failures are bad requests bound to the first offending field.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var violations val.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	first := violations[0]

	msg := first.Error()
	if template, ok := messages[first.Tag()]; ok {
		msg = strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
	}

	return &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Field:   first.Field(),
	}
}
