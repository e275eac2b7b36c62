package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/gatewaytest"
)

func open(t *testing.T, path string) *Gateway {
	t.Helper()
	g, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestGateway(t *testing.T) {
	gatewaytest.Run(t, open(t, ":memory:"))
}

func TestGateway_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "wardrobe.db")
	ctx := context.Background()

	g, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, g.Save(ctx, []byte(`{"items":[]}`)))
	require.NoError(t, g.Close())

	reopened := open(t, path)
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))
	assert.NoError(t, reopened.Ping(ctx))
}
