package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/wardrobe/pkg/httpx"
	pkgvalidator "github.com/ghuser/wardrobe/pkg/validator"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// CreateOutfitRequest is the request body for POST /outfits.
type CreateOutfitRequest struct {
	Name  string      `json:"name" validate:"max=255" example:"Monday office"`
	Items []models.ID `json:"items" validate:"required,min=1,dive,notblank" swaggertype:"array,string"`
	Tags  []string    `json:"tags" validate:"omitempty,dive,notblank" example:"work"`
} // @name CreateOutfitRequest

// UpdateOutfitRequest is the request body for PATCH /outfits/{id}.
// Absent fields are left unchanged.
type UpdateOutfitRequest struct {
	Name     *string      `json:"name" validate:"omitempty,notblank,max=255" example:"Monday office"`
	Items    *[]models.ID `json:"items" validate:"omitempty,min=1,dive,notblank" swaggertype:"array,string"`
	Tags     *[]string    `json:"tags" validate:"omitempty,dive,notblank"`
	LastWorn *time.Time   `json:"lastWorn" example:"2024-01-15T10:30:00Z"`
} // @name UpdateOutfitRequest

// OutfitHandler serves /outfits.
type OutfitHandler struct {
	handler
}

// NewOutfitHandler returns an OutfitHandler backed by the given services.
func NewOutfitHandler(svc *appsvcs.Services, isProduction bool) *OutfitHandler {
	return &OutfitHandler{handler: newHandler(svc, isProduction)}
}

// List returns the outfits matching the query filters.
//
//	@Summary		List outfits
//	@Description	Category, color and search constraints match when any item of the outfit matches.
//	@Tags			outfits
//	@Produce		json
//	@Param			category	query		string	false	"Exact category of any item"
//	@Param			categories	query		string	false	"Any of these categories"
//	@Param			color		query		string	false	"Exact color of any item"
//	@Param			colors		query		string	false	"Any of these colors"
//	@Param			tag			query		string	false	"Must carry this tag"
//	@Param			tags		query		string	false	"Any of these tags"
//	@Param			search		query		string	false	"Case-insensitive substring"
//	@Param			dateFrom	query		string	false	"Created on or after (YYYY-MM-DD)"
//	@Param			dateTo		query		string	false	"Created on or before (YYYY-MM-DD)"
//	@Param			sortBy		query		string	false	"date_desc (default), date_asc, name_asc, name_desc or none"
//	@Success		200			{array}		models.Outfit
//	@Failure		422			{object}	ErrorResponse
//	@Router			/outfits [get]
func (h *OutfitHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orEmpty(h.svc.Catalog.FilterOutfits(r.Context(), spec)))
}

// Create saves an outfit from an explicit item selection.
//
//	@Summary	Create outfit
//	@Tags		outfits
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateOutfitRequest	true	"Outfit to create"
//	@Success	201		{object}	models.Outfit
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/outfits [post]
func (h *OutfitHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOutfitRequest](w, r)
	if !ok {
		return
	}

	outfit, err := h.svc.Catalog.CreateOutfit(r.Context(), appsvcs.OutfitInput{
		Name:  req.Name,
		Items: req.Items,
		Tags:  req.Tags,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, outfit)
}

// Get returns one outfit.
//
//	@Summary	Get outfit
//	@Tags		outfits
//	@Produce	json
//	@Param		id	path		string	true	"Outfit ID"
//	@Success	200	{object}	models.Outfit
//	@Failure	404	{object}	ErrorResponse
//	@Router		/outfits/{id} [get]
func (h *OutfitHandler) Get(w http.ResponseWriter, r *http.Request) {
	outfit, ok := h.svc.Catalog.GetOutfit(r.Context(), pathID(r))
	if !ok {
		h.fail(w, r, domain.ErrOutfitNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, outfit)
}

// Patch updates the supplied fields of an outfit.
//
//	@Summary	Update outfit
//	@Tags		outfits
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Outfit ID"
//	@Param		request	body		UpdateOutfitRequest	true	"Fields to change"
//	@Success	200		{object}	models.Outfit
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/outfits/{id} [patch]
func (h *OutfitHandler) Patch(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateOutfitRequest](w, r)
	if !ok {
		return
	}

	outfit, err := h.svc.Catalog.UpdateOutfit(r.Context(), pathID(r), appsvcs.OutfitPatch{
		Name:     req.Name,
		Items:    req.Items,
		Tags:     req.Tags,
		LastWorn: req.LastWorn,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, outfit)
}

// Delete removes an outfit.
//
//	@Summary	Delete outfit
//	@Tags		outfits
//	@Param		id	path	string	true	"Outfit ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/outfits/{id} [delete]
func (h *OutfitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Catalog.DeleteOutfit(r.Context(), pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !deleted {
		h.fail(w, r, domain.ErrOutfitNotFound)
		return
	}
	httpx.NoContent(w)
}

// Load replaces the working outfit with a saved outfit.
//
//	@Summary		Load outfit
//	@Description	Replaces the current outfit with the saved outfit's items that still exist.
//	@Tags			outfits
//	@Produce		json
//	@Param			id	path		string	true	"Outfit ID"
//	@Success		200	{array}		models.Item
//	@Failure		404	{object}	ErrorResponse
//	@Router			/outfits/{id}/load [post]
func (h *OutfitHandler) Load(w http.ResponseWriter, r *http.Request) {
	items, ok := h.svc.Catalog.LoadOutfit(r.Context(), pathID(r))
	if !ok {
		h.fail(w, r, domain.ErrOutfitNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, orEmpty(items))
}
