// Package media turns uploaded data URIs into the image references kept on
// catalog items, either inline or as objects in a blob store.
package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// MaxImageBytes caps a single decoded image.
const MaxImageBytes = 10 << 20

// rejected lists image types that are never stored.
var rejected = map[string]bool{
	"image/svg+xml": true, // may carry script
}

// Decode parses a data URI and returns the image with its sniffed MIME type
// and file extension. The declared type in the URI is ignored.
func Decode(ref string) (models.ImageUpload, string, error) {
	img, err := models.ParseDataURI(ref)
	if err != nil {
		return models.ImageUpload{}, "", domain.Invalid(domain.ErrInvalidImage, "%v", err)
	}
	return Sniff(img.Data)
}

// Sniff detects the image type of data.
func Sniff(data []byte) (models.ImageUpload, string, error) {
	if len(data) == 0 {
		return models.ImageUpload{}, "", domain.Invalid(domain.ErrInvalidImage, "image is empty")
	}
	if len(data) > MaxImageBytes {
		return models.ImageUpload{}, "", domain.Invalid(domain.ErrInvalidImage, "image exceeds %d bytes", MaxImageBytes)
	}
	mt := mimetype.Detect(data)
	mime, _, _ := strings.Cut(mt.String(), ";")
	if !strings.HasPrefix(mime, "image/") || rejected[mime] {
		return models.ImageUpload{}, "", domain.Invalid(domain.ErrInvalidImage, "unsupported content type %s", mime)
	}
	return models.ImageUpload{Data: data, MIMEType: mime}, mt.Extension(), nil
}

// Inline keeps images embedded in the catalog as data URIs.
type Inline struct{}

// Store re-encodes a data URI with its sniffed MIME type. Other references
// are kept as they are.
func (Inline) Store(_ context.Context, _ models.ID, ref string) (string, error) {
	if !models.IsDataURI(ref) {
		return ref, nil
	}
	img, _, err := Decode(ref)
	if err != nil {
		return "", err
	}
	return img.DataURI(), nil
}

// Release is a no-op: inline images live and die with their item.
func (Inline) Release(context.Context, []string) error { return nil }

func validItemID(id models.ID) error {
	s := string(id)
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: item id %q cannot name an image directory", domain.ErrInvalidImage, s)
	}
	return nil
}
