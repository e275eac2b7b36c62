// Package blob stores item image bytes outside the catalog document.
// The catalog keeps only a reference (a /media/<key> URL) per image.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ghuser/wardrobe/pkg/config"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("blob: not found")

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a minimal S3-like object store. Put overwrites existing keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
}

// New returns the store selected by cfg.MediaDriver, or nil for inline media.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.MediaDriver {
	case config.MediaInline, "":
		return nil, nil
	case config.MediaFS:
		return NewFS(cfg.MediaDir)
	case config.MediaS3:
		return NewS3(ctx, S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.MinioBucket,
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioRootUser,
			SecretAccessKey: cfg.MinioRootPassword,
			PathStyle:       true,
		})
	default:
		return nil, fmt.Errorf("blob: unknown media driver %q", cfg.MediaDriver)
	}
}

// DeletePrefix removes every object whose key starts with prefix and
// returns how many were removed.
func DeletePrefix(ctx context.Context, s Store, prefix string) (int, error) {
	infos, err := s.List(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("blob: list %s: %w", prefix, err)
	}
	n := 0
	for _, info := range infos {
		ok, err := s.Delete(ctx, info.Key)
		if err != nil {
			return n, fmt.Errorf("blob: delete %s: %w", info.Key, err)
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
