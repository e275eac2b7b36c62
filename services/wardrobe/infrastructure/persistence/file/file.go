// Package file stores the catalog blob as a JSON file on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
)

// Gateway implements repositories.CatalogGateway on a single file. Saves go
// to a temp file in the same directory which is renamed over the target, so a
// failed save leaves the previous file intact.
type Gateway struct {
	mu   sync.Mutex
	path string
}

// New returns a Gateway for path. The file and its directory are created on
// the first save.
func New(path string) *Gateway {
	return &Gateway{path: path}
}

// Path returns the file the gateway writes to.
func (g *Gateway) Path() string {
	return g.path
}

func (g *Gateway) Load(_ context.Context) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repositories.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", g.path, err)
	}
	if len(b) == 0 {
		return nil, repositories.ErrEmpty
	}
	return b, nil
}

func (g *Gateway) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(g.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		return fmt.Errorf("replace %s: %w", g.path, err)
	}
	return nil
}

func (g *Gateway) Clear(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := os.Remove(g.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", g.path, err)
	}
	return nil
}
