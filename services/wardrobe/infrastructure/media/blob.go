package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/wardrobe/pkg/blob"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// URLPrefix starts every reference to an image held in a blob store.
const URLPrefix = "/media/"

// Blob stores uploaded images in a blob.Store under
// images/<itemID>/<imageID>.<ext> and references them as URLPrefix+key.
type Blob struct {
	store blob.Store
	newID func() string
}

// NewBlob returns a Blob backed by store.
func NewBlob(store blob.Store) *Blob {
	return &Blob{store: store, newID: uuid.NewString}
}

// Store uploads a data URI and returns its /media reference. References that
// are not data URIs are kept as they are.
func (b *Blob) Store(ctx context.Context, itemID models.ID, ref string) (string, error) {
	if !models.IsDataURI(ref) {
		return ref, nil
	}
	if err := validItemID(itemID); err != nil {
		return "", err
	}
	img, ext, err := Decode(ref)
	if err != nil {
		return "", err
	}

	key := path.Join("images", string(itemID), b.newID()+ext)
	if _, err := b.store.Put(ctx, key, bytes.NewReader(img.Data), blob.PutOptions{
		ContentType: img.MIMEType,
		Metadata:    map[string]string{"item-id": string(itemID)},
	}); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return URLPrefix + key, nil
}

// Release deletes the objects behind /media references. Missing objects are
// not an error.
func (b *Blob) Release(ctx context.Context, refs []string) error {
	var errs []error
	for _, ref := range refs {
		key, ok := KeyOf(ref)
		if !ok {
			continue
		}
		if _, err := b.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Open streams the object stored under key.
func (b *Blob) Open(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	return b.store.Get(ctx, key)
}

// KeyOf returns the blob key of a /media reference.
func KeyOf(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, URLPrefix)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
