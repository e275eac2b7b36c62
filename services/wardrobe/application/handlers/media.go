package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/wardrobe/pkg/blob"
	"github.com/ghuser/wardrobe/pkg/httpx"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
)

// MediaHandler streams stored images back to clients.
type MediaHandler struct {
	handler
}

// NewMediaHandler returns a MediaHandler backed by the given services.
func NewMediaHandler(svc *appsvcs.Services, isProduction bool) *MediaHandler {
	return &MediaHandler{handler: newHandler(svc, isProduction)}
}

// Execute serves GET /media/*. Keys are immutable, so responses are cacheable.
//
//	@Summary	Get stored image
//	@Tags		media
//	@Produce	image/jpeg
//	@Produce	image/png
//	@Param		key	path	string	true	"Blob key, e.g. images/<itemID>/<imageID>.jpg"
//	@Success	200
//	@Failure	404	{object}	ErrorResponse
//	@Router		/media/{key} [get]
func (h *MediaHandler) Execute(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if h.svc.Media == nil || !strings.HasPrefix(key, "images/") {
		httpx.JSONError(w, http.StatusNotFound, "image not found")
		return
	}

	info, body, err := h.svc.Media.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "image not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}
