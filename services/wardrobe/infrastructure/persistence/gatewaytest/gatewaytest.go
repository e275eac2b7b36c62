// Package gatewaytest holds the behavior every CatalogGateway must share.
package gatewaytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/repositories"
)

// Run exercises gw, which must start empty.
func Run(t *testing.T, gw repositories.CatalogGateway) {
	t.Helper()
	ctx := context.Background()

	_, err := gw.Load(ctx)
	require.ErrorIs(t, err, repositories.ErrEmpty, "Load on empty store")
	require.NoError(t, gw.Clear(ctx), "Clear on empty store")

	first := `{"items":[],"outfits":[],"colors":["navy"],"categories":[],"tags":[]}`
	require.NoError(t, gw.Save(ctx, []byte(first)))
	requireStored(t, gw, first)

	second := `{"items":[{"id":"a"}],"outfits":[],"colors":[],"categories":[],"tags":[]}`
	require.NoError(t, gw.Save(ctx, []byte(second)), "Save overwrite")
	requireStored(t, gw, second)

	require.NoError(t, gw.Clear(ctx))
	_, err = gw.Load(ctx)
	require.ErrorIs(t, err, repositories.ErrEmpty, "Load after Clear")
}

// requireStored compares as JSON since postgres JSONB reformats.
func requireStored(t *testing.T, gw repositories.CatalogGateway, want string) {
	t.Helper()
	got, err := gw.Load(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, want, string(got))
}
