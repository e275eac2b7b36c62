package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/wardrobe/pkg/httpx"
	pkgvalidator "github.com/ghuser/wardrobe/pkg/validator"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// AddVocabularyRequest is the request body for POST /vocabulary/{kind}.
type AddVocabularyRequest struct {
	Value string `json:"value" validate:"required,notblank,max=64" example:"olive"`
} // @name AddVocabularyRequest

// VocabularyHandler serves /vocabulary.
type VocabularyHandler struct {
	handler
}

// NewVocabularyHandler returns a VocabularyHandler backed by the given services.
func NewVocabularyHandler(svc *appsvcs.Services, isProduction bool) *VocabularyHandler {
	return &VocabularyHandler{handler: newHandler(svc, isProduction)}
}

// Get returns the category, color and tag lists.
//
//	@Summary	Get vocabulary
//	@Tags		vocabulary
//	@Produce	json
//	@Success	200	{object}	models.Vocabulary
//	@Router		/vocabulary [get]
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Catalog.Vocabulary(r.Context()))
}

// Add appends a value to one vocabulary list.
//
//	@Summary		Add vocabulary value
//	@Description	Returns added=false when the value is already present (case-insensitive).
//	@Tags			vocabulary
//	@Accept			json
//	@Produce		json
//	@Param			kind	path		string					true	"categories, colors or tags"
//	@Param			request	body		AddVocabularyRequest	true	"Value to add"
//	@Success		200		{object}	AddedResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/vocabulary/{kind} [post]
func (h *VocabularyHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddVocabularyRequest](w, r)
	if !ok {
		return
	}

	added, err := h.svc.Catalog.AddVocabulary(r.Context(), models.VocabularyKind(chi.URLParam(r, "kind")), req.Value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, AddedResponse{Added: added})
}

// Remove drops a value from one vocabulary list. Items keep their values.
//
//	@Summary	Remove vocabulary value
//	@Tags		vocabulary
//	@Produce	json
//	@Param		kind	path		string	true	"categories, colors or tags"
//	@Param		value	path		string	true	"Value to remove"
//	@Success	200		{object}	RemovedResponse
//	@Failure	422		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/vocabulary/{kind}/{value} [delete]
func (h *VocabularyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the request carries one, leaving the
	// param escaped; otherwise it is already decoded.
	value := chi.URLParam(r, "value")
	if r.URL.RawPath != "" {
		var err error
		if value, err = url.PathUnescape(value); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid path")
			return
		}
	}

	removed, err := h.svc.Catalog.RemoveVocabulary(r.Context(), models.VocabularyKind(chi.URLParam(r, "kind")), value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, RemovedResponse{Removed: removed})
}
