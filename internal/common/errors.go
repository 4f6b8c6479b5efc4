package common

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput               = errors.New("invalid input")
	ErrUnauthorized               = errors.New("unauthorized access")
	ErrForbidden                  = errors.New("forbidden access")
	ErrNotFound                   = errors.New("resource not found")
	ErrUpstreamUnavailable        = errors.New("judge service unavailable")
	ErrUnsupportedLanguage        = errors.New("unsupported language")
	ErrReferenceSolutionFailed    = errors.New("reference solution failed")
	ErrExecutionPersistenceFailed = errors.New("failed to persist execution results")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnsupportedLanguage),
		errors.Is(err, ErrReferenceSolutionFailed):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
