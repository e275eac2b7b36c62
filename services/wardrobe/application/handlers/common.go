// Package handlers holds the HTTP handlers of the wardrobe API.
// Each handler decodes its request, calls the catalog service and encodes the
// result; domain errors are mapped to status codes by pkg/errhttp.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/wardrobe/pkg/errhttp"
	"github.com/ghuser/wardrobe/pkg/telemetry"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

// AddedResponse reports whether an idempotent add changed anything.
type AddedResponse struct {
	Added bool `json:"added" example:"true"`
} // @name AddedResponse

// RemovedResponse reports whether an idempotent remove changed anything.
type RemovedResponse struct {
	Removed bool `json:"removed" example:"true"`
} // @name RemovedResponse

// handler carries what every endpoint needs.
type handler struct {
	svc    *appsvcs.Services
	isProd bool
}

func newHandler(svc *appsvcs.Services, isProduction bool) handler {
	return handler{svc: svc, isProd: isProduction}
}

// fail writes err as a JSON error and reports server-side failures to Sentry.
func (h handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errhttp.StatusOf(err) >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	errhttp.WriteSafeError(w, err, h.isProd)
}

func pathID(r *http.Request) models.ID {
	return models.ID(chi.URLParam(r, "id"))
}

// orEmpty keeps JSON arrays from encoding as null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
