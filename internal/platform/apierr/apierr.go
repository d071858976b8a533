package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/errdefs"
)

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

// FromDomain maps the service error taxonomy onto an HTTP status + code.
// Generation and malformed-output failures stay distinct so callers can
// decide whether a retry makes sense.
func FromDomain(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errdefs.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, errdefs.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, errdefs.ErrMalformedOutput):
		return New(http.StatusBadGateway, "malformed_model_output", err)
	case errors.Is(err, errdefs.ErrGenerationFailed):
		return New(http.StatusBadGateway, "generation_failed", err)
	case errors.Is(err, errdefs.ErrStoreFailed):
		return New(http.StatusInternalServerError, "store_failed", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
