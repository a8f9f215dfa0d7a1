package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is an error that carries the HTTP status it should be reported with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest converts err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

// BadRequestf formats the message like fmt.Sprintf.
func BadRequestf(format string, args ...any) error {
	return newFailure(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound reports a missing entity; msg is shown to the caller as is.
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// GetCode returns the status carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries the given status.
func Is(err error, code int) bool {
	return err != nil && GetCode(err) == code
}
