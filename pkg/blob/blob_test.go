package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/pkg/config"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	info, err := s.Put(ctx, "images/a/0.png", strings.NewReader("png-bytes"), PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"item": "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "images/a/0.png", info.Key)
	assert.Equal(t, int64(9), info.Size)

	_, err = s.Put(ctx, "images/a/1.jpg", strings.NewReader("jpg"), PutOptions{ContentType: "image/jpeg"})
	require.NoError(t, err)
	_, err = s.Put(ctx, "images/b/0.png", strings.NewReader("other"), PutOptions{ContentType: "image/png"})
	require.NoError(t, err)

	got, rc, err := s.Get(ctx, "images/a/0.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, "a", got.Metadata["item"])

	// Put overwrites.
	_, err = s.Put(ctx, "images/a/0.png", strings.NewReader("new"), PutOptions{ContentType: "image/png"})
	require.NoError(t, err)
	_, rc, err = s.Get(ctx, "images/a/0.png")
	require.NoError(t, err)
	body, _ = io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "new", string(body))

	list, err := s.List(ctx, "images/a/")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "images/a/0.png", list[0].Key)
	assert.Equal(t, "images/a/1.jpg", list[1].Key)

	n, err := DeletePrefix(ctx, s, "images/a/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, _, err = s.Get(ctx, "images/a/0.png")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	ok, err := s.Delete(ctx, "images/a/0.png")
	require.NoError(t, err)
	assert.False(t, ok)

	rest, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "images/b/0.png", rest[0].Key)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFSStore(t *testing.T) {
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSanitizeKey(t *testing.T) {
	for _, bad := range []string{"", "  ", "/etc/passwd", "../x", "images/../../x", "images/a/0.png.meta"} {
		_, err := sanitizeKey(bad)
		assert.Error(t, err, "key %q", bad)
	}
	k, err := sanitizeKey("images//a/./0.png")
	require.NoError(t, err)
	assert.Equal(t, "images/a/0.png", k)
}

func TestFSStore_RejectsTraversal(t *testing.T) {
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "../escape", strings.NewReader("x"), PutOptions{})
	assert.Error(t, err)
}

func TestNew_SelectsDriver(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, &config.Config{MediaDriver: config.MediaInline})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = New(ctx, &config.Config{MediaDriver: config.MediaFS, MediaDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FS{}, s)

	_, err = New(ctx, &config.Config{MediaDriver: "ftp"})
	assert.Error(t, err)
}
