package repositories

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Load when nothing has been saved yet.
var ErrEmpty = errors.New("catalog store is empty")

// CatalogGateway is the persistence contract for the catalog: the whole
// catalog is one opaque blob that is read once and rewritten on every change.
// The domain layer owns this interface; infrastructure implements it.
type CatalogGateway interface {
	// Load returns the last saved blob, or ErrEmpty when there is none.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored blob. A failed Save must leave the previous
	// blob readable.
	Save(ctx context.Context, blob []byte) error

	// Clear removes the stored blob. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
