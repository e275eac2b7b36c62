package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ghuser/wardrobe/pkg/httpx"
	pkgvalidator "github.com/ghuser/wardrobe/pkg/validator"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/media"
)

// ClassifyRequest is the JSON request body for POST /classify.
type ClassifyRequest struct {
	Image string `json:"image" validate:"required,datauri" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg=="`
} // @name ClassifyRequest

// ClassifyHandler serves POST /classify.
type ClassifyHandler struct {
	handler
}

// NewClassifyHandler returns a ClassifyHandler backed by the given services.
func NewClassifyHandler(svc *appsvcs.Services, isProduction bool) *ClassifyHandler {
	return &ClassifyHandler{handler: newHandler(svc, isProduction)}
}

// Execute labels a photo with vocabulary values.
//
//	@Summary		Classify image
//	@Description	Accepts a JSON body with a data URI, or the raw image bytes with an image/* Content-Type.
//	@Tags			classify
//	@Accept			json
//	@Accept			image/jpeg
//	@Accept			image/png
//	@Produce		json
//	@Param			request	body		ClassifyRequest	true	"Image to classify"
//	@Success		200		{object}	models.Classification
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/classify [post]
func (h *ClassifyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	img, ok := h.readImage(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Catalog.ClassifyImage(r.Context(), img)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *ClassifyHandler) readImage(w http.ResponseWriter, r *http.Request) (models.ImageUpload, bool) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(ct, "image/") || ct == "application/octet-stream" {
		data, err := io.ReadAll(io.LimitReader(r.Body, media.MaxImageBytes+1))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.fail(w, r, err)
				return models.ImageUpload{}, false
			}
			httpx.JSONError(w, http.StatusBadRequest, "Unreadable body")
			return models.ImageUpload{}, false
		}
		img, _, err := media.Sniff(data)
		if err != nil {
			h.fail(w, r, err)
			return models.ImageUpload{}, false
		}
		return img, true
	}

	req, ok := pkgvalidator.ValidateRequest[ClassifyRequest](w, r)
	if !ok {
		return models.ImageUpload{}, false
	}
	img, _, err := media.Decode(req.Image)
	if err != nil {
		h.fail(w, r, err)
		return models.ImageUpload{}, false
	}
	return img, true
}
