package web

import (
	"net/http"

	"github.com/pkg/errors"
)

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{err, status}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf reports the HTTP status carried by err, 500 when err is not a
// request error.
func StatusOf(err error) int {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr.Status
	}
	return http.StatusInternalServerError
}
