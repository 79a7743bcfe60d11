package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is an expected error that carries the http status it is answered with.
// Errors that are not a Failure are answered as internal errors.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest turns a decoding or parsing error into a bad request. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestf(format string, args ...any) error {
	return newFailure(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// FieldValidation is a bad request bound to the offending input field.
func FieldValidation(field, message string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: field + ": " + message,
		Field:   field,
	}
}

func Unauthorized(message string) error {
	return newFailure(http.StatusUnauthorized, message)
}

// EntityNotFound also covers entities the caller may not see.
func EntityNotFound(entity, id string) error {
	return newFailure(http.StatusNotFound, fmt.Sprintf("%s with id=%s not found", entity, id))
}

func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// GetCode is the status err is answered with, 500 unless err wraps a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetField is the input field a validation Failure is bound to, if any.
func GetField(err error) string {
	if fail, ok := as(err); ok {
		return fail.Field
	}

	return ""
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	if !errors.As(err, &fail) {
		return nil, false
	}

	return fail, true
}
