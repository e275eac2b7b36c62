// Package memory keeps the catalog blob in process memory. Used by tests and
// by STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
)

// Gateway implements repositories.CatalogGateway on a byte slice.
type Gateway struct {
	mu    sync.Mutex
	blob  []byte
	saves int
}

// New returns an empty Gateway.
func New() *Gateway {
	return &Gateway{}
}

func (g *Gateway) Load(_ context.Context) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.blob == nil {
		return nil, repositories.ErrEmpty
	}
	return slices.Clone(g.blob), nil
}

func (g *Gateway) Save(_ context.Context, blob []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blob = slices.Clone(blob)
	g.saves++
	return nil
}

func (g *Gateway) Clear(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blob = nil
	return nil
}

// Saves reports how many times Save has been called.
func (g *Gateway) Saves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}
