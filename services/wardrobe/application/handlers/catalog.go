package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ghuser/wardrobe/pkg/httpx"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
)

// CatalogHandler serves whole-catalog operations: statistics, backup and reset.
type CatalogHandler struct {
	handler
}

// NewCatalogHandler returns a CatalogHandler backed by the given services.
func NewCatalogHandler(svc *appsvcs.Services, isProduction bool) *CatalogHandler {
	return &CatalogHandler{handler: newHandler(svc, isProduction)}
}

// Stats returns collection statistics.
//
//	@Summary	Catalog statistics
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	services.Stats
//	@Router		/stats [get]
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Catalog.Statistics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

// Export downloads the catalog as a backup document.
//
//	@Summary	Export catalog
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	services.ExportDocument
//	@Router		/export [get]
func (h *CatalogHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc := h.svc.Catalog.Export(r.Context())
	name := fmt.Sprintf("wardrobe-backup-%s.json", doc.ExportDate.Format("2006-01-02"))
	httpx.Attachment(w, name, doc)
}

// Import replaces the catalog with a backup document.
//
//	@Summary		Import catalog
//	@Description	Replaces items and outfits. Vocabulary lists missing from the document reset to defaults.
//	@Tags			catalog
//	@Accept			json
//	@Param			request	body	services.ExportDocument	true	"Backup document"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		413	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/import [post]
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Catalog.Import(r.Context(), data); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// Reset deletes every item and outfit and restores the default vocabulary.
//
//	@Summary	Reset catalog
//	@Tags		catalog
//	@Success	204
//	@Failure	503	{object}	ErrorResponse
//	@Router		/reset [post]
func (h *CatalogHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Catalog.Reset(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.NoContent(w)
}
