package service

import (
	"errors"
	"net/http"

	"foodgram-api/media"
	"foodgram-api/orm"
)

// Error carries an HTTP status alongside a client-facing message.
type Error struct {
	Status  int
	Message string
	Inner   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func notFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func badRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

func unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// wrapError maps orm and media errors onto HTTP statuses. Errors that are
// already service errors pass through unchanged.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}

	var notFoundErr *orm.NotFoundError
	if errors.As(err, &notFoundErr) {
		return &Error{Status: http.StatusNotFound, Message: notFoundErr.Error(), Inner: err}
	}

	var conflictErr *orm.ConflictError
	if errors.As(err, &conflictErr) {
		return &Error{Status: http.StatusConflict, Message: conflictErr.Error(), Inner: err}
	}

	var badInputErr *orm.BadInputError
	if errors.As(err, &badInputErr) {
		return &Error{Status: http.StatusBadRequest, Message: badInputErr.Error(), Inner: err}
	}

	if media.IsInputError(err) {
		return &Error{Status: http.StatusBadRequest, Message: err.Error(), Inner: err}
	}

	return &Error{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
		Inner:   err,
	}
}

// StatusOf returns the HTTP status for an error, defaulting to 500.
func StatusOf(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}

	return http.StatusInternalServerError
}
