// Package apperrors defines the error kinds shared by services and routes.
// Services wrap one of the kinds with context, routes map the kind to a status code.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

// RecoveryRequiredError is returned by login when the user exists but the password
// does not match. It carries the stored recovery question.
type RecoveryRequiredError struct {
	Question string
}

func (e *RecoveryRequiredError) Error() string {
	return "password mismatch, recovery required"
}

func (e *RecoveryRequiredError) Unwrap() error {
	return ErrUnauthorized
}

// HTTPStatus maps an error to the status code of the public API.
// Conflicts are reported as 400, which is what existing clients expect.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
