package handlers

import (
	"net/http"

	"github.com/ghuser/wardrobe/pkg/httpx"
	pkgvalidator "github.com/ghuser/wardrobe/pkg/validator"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain"
)

// CreateItemRequest is the request body for POST /items.
// Images are base64 data URIs; they are stored before the item is saved.
type CreateItemRequest struct {
	Name         string   `json:"name" validate:"max=255" example:"Navy blazer"`
	Category     string   `json:"category" example:"blazer"`
	Color        string   `json:"color" example:"navy"`
	Tags         []string `json:"tags" validate:"omitempty,dive,notblank" example:"work,elegant"`
	Notes        string   `json:"notes" example:"Dry clean only"`
	Images       []string `json:"images" validate:"omitempty,dive,notblank"`
	AutoClassify bool     `json:"autoClassify" example:"false"`
} // @name CreateItemRequest

func (r CreateItemRequest) input() appsvcs.ItemInput {
	return appsvcs.ItemInput{
		Name:         r.Name,
		Category:     r.Category,
		Color:        r.Color,
		Tags:         r.Tags,
		Notes:        r.Notes,
		Images:       r.Images,
		AutoClassify: r.AutoClassify,
	}
}

// BulkCreateItemsRequest is the request body for POST /items/bulk.
type BulkCreateItemsRequest struct {
	Items []CreateItemRequest `json:"items" validate:"required,min=1,max=500,dive"`
} // @name BulkCreateItemsRequest

// UpdateItemRequest is the request body for PATCH /items/{id}.
// Absent fields are left unchanged.
type UpdateItemRequest struct {
	Name     *string   `json:"name" validate:"omitempty,notblank,max=255" example:"Navy blazer"`
	Category *string   `json:"category" example:"blazer"`
	Color    *string   `json:"color" example:"navy"`
	Tags     *[]string `json:"tags" validate:"omitempty,dive,notblank"`
	Notes    *string   `json:"notes"`
	Images   *[]string `json:"images" validate:"omitempty,dive,notblank"`
} // @name UpdateItemRequest

// ItemHandler serves /items.
type ItemHandler struct {
	handler
}

// NewItemHandler returns an ItemHandler backed by the given services.
func NewItemHandler(svc *appsvcs.Services, isProduction bool) *ItemHandler {
	return &ItemHandler{handler: newHandler(svc, isProduction)}
}

// List returns the items matching the query filters.
//
//	@Summary		List items
//	@Description	Filters and sorts the item collection. Multi-value parameters take comma-separated values.
//	@Tags			items
//	@Produce		json
//	@Param			category	query		string	false	"Exact category"
//	@Param			categories	query		string	false	"Any of these categories"
//	@Param			color		query		string	false	"Exact color"
//	@Param			colors		query		string	false	"Any of these colors"
//	@Param			tag			query		string	false	"Must carry this tag"
//	@Param			tags		query		string	false	"Any of these tags"
//	@Param			search		query		string	false	"Case-insensitive substring"
//	@Param			dateFrom	query		string	false	"Added on or after (YYYY-MM-DD)"
//	@Param			dateTo		query		string	false	"Added on or before (YYYY-MM-DD)"
//	@Param			sortBy		query		string	false	"date_desc (default), date_asc, name_asc, name_desc or none"
//	@Success		200			{array}		models.Item
//	@Failure		422			{object}	ErrorResponse
//	@Router			/items [get]
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orEmpty(h.svc.Catalog.FilterItems(r.Context(), spec)))
}

// Create adds one item.
//
//	@Summary		Create item
//	@Description	Adds an item. With autoClassify, a blank name, category, color or tag list is filled from the first image.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item to add"
//	@Success		201		{object}	models.Item
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/items [post]
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.AddItem(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// BulkCreate adds several items in one commit.
//
//	@Summary		Create items in bulk
//	@Description	Adds all items or none of them.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BulkCreateItemsRequest	true	"Items to add"
//	@Success		201		{array}		models.Item
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/items/bulk [post]
func (h *ItemHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[BulkCreateItemsRequest](w, r)
	if !ok {
		return
	}

	inputs := make([]appsvcs.ItemInput, len(req.Items))
	for i, it := range req.Items {
		inputs[i] = it.input()
	}
	items, err := h.svc.Catalog.AddItems(r.Context(), inputs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, items)
}

// Get returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	models.Item
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.svc.Catalog.GetItem(r.Context(), pathID(r))
	if !ok {
		h.fail(w, r, domain.ErrItemNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Patch updates the supplied fields of an item.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Item ID"
//	@Param		request	body		UpdateItemRequest	true	"Fields to change"
//	@Success	200		{object}	models.Item
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/items/{id} [patch]
func (h *ItemHandler) Patch(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.UpdateItem(r.Context(), pathID(r), appsvcs.ItemPatch{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Tags:     req.Tags,
		Notes:    req.Notes,
		Images:   req.Images,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete removes an item. Deleting an unknown id succeeds.
//
//	@Summary	Delete item
//	@Tags		items
//	@Param		id	path	string	true	"Item ID"
//	@Success	204
//	@Failure	503	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Catalog.DeleteItem(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.NoContent(w)
}
