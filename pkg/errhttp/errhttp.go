// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/wardrobe/pkg/httpx"
	"github.com/ghuser/wardrobe/services/wardrobe/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, StatusOf(err), err.Error())
}

// WriteSafeError is WriteError with 5xx messages replaced by their status text.
func WriteSafeError(w http.ResponseWriter, err error, isProduction bool) {
	status := StatusOf(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

// StatusOf returns the HTTP status code err maps to.
func StatusOf(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrOutfitNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, domain.ErrInvalidImport):
		return http.StatusBadRequest // 400
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge // 413
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, domain.ErrClassificationFailed):
		return http.StatusBadGateway // 502
	case errors.Is(err, domain.ErrClassifierUnavailable), errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
