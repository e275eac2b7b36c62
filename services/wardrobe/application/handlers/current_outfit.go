package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ghuser/wardrobe/pkg/httpx"
	pkgvalidator "github.com/ghuser/wardrobe/pkg/validator"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// AddToOutfitRequest is the request body for POST /outfit/current/items.
type AddToOutfitRequest struct {
	ItemID models.ID `json:"itemId" validate:"required,notblank" swaggertype:"string" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name AddToOutfitRequest

// SaveOutfitRequest is the request body for POST /outfit/current/save.
// The body is optional; a blank name becomes "Outfit N".
type SaveOutfitRequest struct {
	Name  string   `json:"name" validate:"max=255" example:"Friday dinner"`
	Tags  []string `json:"tags" validate:"omitempty,dive,notblank" example:"evening"`
	Clear bool     `json:"clear" example:"true"`
} // @name SaveOutfitRequest

// CurrentOutfitHandler serves /outfit/current, the outfit being assembled.
type CurrentOutfitHandler struct {
	handler
}

// NewCurrentOutfitHandler returns a CurrentOutfitHandler backed by the given services.
func NewCurrentOutfitHandler(svc *appsvcs.Services, isProduction bool) *CurrentOutfitHandler {
	return &CurrentOutfitHandler{handler: newHandler(svc, isProduction)}
}

// Get returns the items of the working outfit.
//
//	@Summary	Get current outfit
//	@Tags		current-outfit
//	@Produce	json
//	@Success	200	{array}	models.Item
//	@Router		/outfit/current [get]
func (h *CurrentOutfitHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, orEmpty(h.svc.Catalog.CurrentOutfit(r.Context())))
}

// Clear empties the working outfit.
//
//	@Summary	Clear current outfit
//	@Tags		current-outfit
//	@Success	204
//	@Router		/outfit/current [delete]
func (h *CurrentOutfitHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.svc.Catalog.ClearCurrentOutfit(r.Context())
	httpx.NoContent(w)
}

// Add puts an item into the working outfit.
//
//	@Summary		Add item to current outfit
//	@Description	Returns added=false when the item is already part of the outfit.
//	@Tags			current-outfit
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddToOutfitRequest	true	"Item to add"
//	@Success		200		{object}	AddedResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/outfit/current/items [post]
func (h *CurrentOutfitHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddToOutfitRequest](w, r)
	if !ok {
		return
	}

	added, err := h.svc.Catalog.AddToCurrentOutfit(r.Context(), req.ItemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, AddedResponse{Added: added})
}

// Remove takes an item out of the working outfit.
//
//	@Summary	Remove item from current outfit
//	@Tags		current-outfit
//	@Param		id	path	string	true	"Item ID"
//	@Success	204
//	@Router		/outfit/current/items/{id} [delete]
func (h *CurrentOutfitHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.svc.Catalog.RemoveFromCurrentOutfit(r.Context(), pathID(r))
	httpx.NoContent(w)
}

// Save stores the working outfit as a named outfit.
//
//	@Summary		Save current outfit
//	@Description	Increments the usage count of every item. With clear=true the working outfit is emptied afterwards.
//	@Tags			current-outfit
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SaveOutfitRequest	false	"Outfit name and tags"
//	@Success		201		{object}	models.Outfit
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/outfit/current/save [post]
func (h *CurrentOutfitHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, err)
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := pkgvalidator.Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": pkgvalidator.FormatValidationErrors(err),
		})
		return
	}

	outfit, err := h.svc.Catalog.SaveOutfit(r.Context(), req.Name, req.Tags)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Clear {
		h.svc.Catalog.ClearCurrentOutfit(r.Context())
	}
	httpx.JSON(w, http.StatusCreated, outfit)
}

// Suggest replaces the working outfit with a color-coordinated suggestion.
//
//	@Summary	Suggest outfit
//	@Tags		current-outfit
//	@Produce	json
//	@Success	200	{array}		models.Item
//	@Failure	422	{object}	ErrorResponse
//	@Router		/outfit/current/suggest [post]
func (h *CurrentOutfitHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Catalog.SuggestOutfit(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}
