// Package failure carries an HTTP status alongside a client-safe message.
// Anything that is not a *Failure is treated as an internal error and its
// text is never shown to the caller.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

var (
	ForbiddenError          = New(http.StatusForbidden, "You don't have the required permissions")
	ResourceRestrictedError = New(http.StatusForbidden, "You don't have permission to access this resource")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Wrap keeps cause reachable through errors.Is/As while exposing only message.
func Wrap(cause error, code int, message string) error {
	if cause == nil {
		return nil
	}

	return &Failure{Code: code, Message: message, cause: cause}
}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest nil-passes so validator results can be returned directly.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return Wrap(err, http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

// UnprocessableEntity is for well-formed requests the current state rejects,
// e.g. redeeming more Drink Dollars than the balance holds.
func UnprocessableEntity(msg string) error {
	return New(http.StatusUnprocessableEntity, msg)
}

// InternalError exposes err's text, so pass only curated messages.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// GetCode is 500 for anything that is not a *Failure, nil included.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsFailure reports whether err carries a client-safe message.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}
