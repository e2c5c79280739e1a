package apierr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
)

// Error carries the HTTP status a service wants the handler to answer with.
// Its message is shown to the client as-is.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", msg, pkgerrors.ErrInvalidArgument))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf("%s: %w", msg, pkgerrors.ErrNotFound))
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("%s: %w", msg, pkgerrors.ErrUnauthorized))
}

// Message is the client-facing text. For the helper constructors this is the
// message without the sentinel suffix.
func (e *Error) Message() string {
	if e == nil || e.Err == nil {
		return e.Error()
	}
	if inner := errors.Unwrap(e.Err); inner != nil {
		msg := e.Err.Error()
		suffix := ": " + inner.Error()
		if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return e.Err.Error()
}

// StatusOf maps an error to an HTTP status, honoring *Error and the shared
// sentinels.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkgerrors.ErrInvalidArgument), errors.Is(err, pkgerrors.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
