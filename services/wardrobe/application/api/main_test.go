package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/pkg/blob"
	"github.com/ghuser/wardrobe/services/wardrobe/application/api"
	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/classifier"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/media"
	"github.com/ghuser/wardrobe/services/wardrobe/infrastructure/persistence/memory"
)

type testAPI struct {
	t      *testing.T
	router http.Handler
	svcs   *appsvcs.Services
}

func newTestAPI(t *testing.T, opts ...appsvcs.Option) *testAPI {
	t.Helper()
	gw := memory.New()
	n := 0
	base := []appsvcs.Option{
		appsvcs.WithClock(func() time.Time { return time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC) }),
		appsvcs.WithIDGenerator(func() models.ID { n++; return models.ID(fmt.Sprintf("id-%d", n)) }),
	}
	svc := appsvcs.NewCatalogService(gw, append(base, opts...)...)
	require.NoError(t, svc.Load(context.Background()))

	svcs := &appsvcs.Services{Catalog: svc, Gateway: gw}
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) { api.WardrobeRoutes(r, svcs, false) })
	api.MediaRoutes(r, svcs, false)
	return &testAPI{t: t, router: r, svcs: svcs}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) addItem(name, category, color string, tags ...string) models.Item {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/items", map[string]any{
		"name": name, "category": category, "color": color, "tags": tags,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Item](a.t, rec)
}

func pngDataURI(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := range 8 {
		for y := range 8 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestItems_Lifecycle(t *testing.T) {
	a := newTestAPI(t)

	item := a.addItem("Navy blazer", "blazer", "navy", "work")
	assert.Equal(t, models.ID("id-1"), item.ID)

	rec := a.do(http.MethodGet, "/api/items/"+item.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Navy blazer", decode[models.Item](t, rec).Name)

	rec = a.do(http.MethodPatch, "/api/items/"+item.ID.String(), map[string]any{"notes": "dry clean"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[models.Item](t, rec)
	assert.Equal(t, "dry clean", patched.Notes)
	assert.Equal(t, "blazer", patched.Category)

	rec = a.do(http.MethodDelete, "/api/items/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, "/api/items/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodDelete, "/api/items/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting an absent item is a no-op")
}

func TestItems_CreateErrors(t *testing.T) {
	a := newTestAPI(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"unknown category", map[string]any{"name": "Cape", "category": "cape", "color": "navy"}, http.StatusUnprocessableEntity},
		{"blank tag", map[string]any{"name": "Shirt", "category": "shirt", "color": "white", "tags": []string{" "}}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(http.MethodPost, "/api/items", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, a.svcs.Catalog.Items(context.Background()))
}

func TestItems_PatchUnknown(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(http.MethodPatch, "/api/items/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItems_BulkCreateIsAllOrNothing(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/api/items/bulk", map[string]any{"items": []map[string]any{
		{"name": "Shirt", "category": "shirt", "color": "white"},
		{"name": "Cape", "category": "cape", "color": "navy"},
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, a.svcs.Catalog.Items(context.Background()))

	rec = a.do(http.MethodPost, "/api/items/bulk", map[string]any{"items": []map[string]any{
		{"name": "Shirt", "category": "shirt", "color": "white"},
		{"name": "Belt", "category": "belt", "color": "brown"},
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]models.Item](t, rec), 2)
}

func TestItems_ListFiltersAndSorts(t *testing.T) {
	a := newTestAPI(t)
	a.addItem("Zebra shirt", "shirt", "white", "casual")
	a.addItem("Alpine blazer", "blazer", "navy", "work")
	a.addItem("Midnight dress", "dress", "black", "evening")

	names := func(rec *httptest.ResponseRecorder) []string {
		var out []string
		for _, it := range decode[[]models.Item](t, rec) {
			out = append(out, it.Name)
		}
		return out
	}

	rec := a.do(http.MethodGet, "/api/items?sortBy=name_asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Alpine blazer", "Midnight dress", "Zebra shirt"}, names(rec))

	rec = a.do(http.MethodGet, "/api/items?colors=navy,black&sortBy=none", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Alpine blazer", "Midnight dress"}, names(rec))

	rec = a.do(http.MethodGet, "/api/items?search=ZEBRA", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Zebra shirt"}, names(rec))

	rec = a.do(http.MethodGet, "/api/items?category=coat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	for _, q := range []string{"sortBy=price", "dateFrom=yesterday"} {
		rec = a.do(http.MethodGet, "/api/items?"+q, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, q)
	}
}

func TestCurrentOutfit_AddSaveClear(t *testing.T) {
	a := newTestAPI(t)
	shirt := a.addItem("Shirt", "shirt", "white")

	rec := a.do(http.MethodPost, "/api/outfit/current/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "saving an empty outfit fails")

	rec = a.do(http.MethodPost, "/api/outfit/current/items", map[string]any{"itemId": shirt.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[map[string]bool](t, rec)["added"])

	rec = a.do(http.MethodPost, "/api/outfit/current/items", map[string]any{"itemId": shirt.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[map[string]bool](t, rec)["added"])

	rec = a.do(http.MethodPost, "/api/outfit/current/items", map[string]any{"itemId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodPost, "/api/outfit/current/save", map[string]any{"name": "Casual", "clear": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	outfit := decode[models.Outfit](t, rec)
	assert.Equal(t, []models.ID{shirt.ID}, outfit.Items)

	rec = a.do(http.MethodGet, "/api/outfit/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	got, _ := a.svcs.Catalog.GetItem(context.Background(), shirt.ID)
	assert.Equal(t, 1, got.UsageCount)
}

func TestCurrentOutfit_RemoveAndSuggest(t *testing.T) {
	a := newTestAPI(t)
	shirt := a.addItem("Shirt", "shirt", "white")

	rec := a.do(http.MethodPost, "/api/outfit/current/suggest", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "one item is not enough")

	a.do(http.MethodPost, "/api/outfit/current/items", map[string]any{"itemId": shirt.ID})
	rec = a.do(http.MethodDelete, "/api/outfit/current/items/"+shirt.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, a.svcs.Catalog.CurrentOutfit(context.Background()))

	a.addItem("Trousers", "trousers", "navy")
	rec = a.do(http.MethodPost, "/api/outfit/current/suggest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Item](t, rec), 2)
}

func TestOutfits_CreateLoadDelete(t *testing.T) {
	a := newTestAPI(t)
	shirt := a.addItem("Shirt", "shirt", "white")
	belt := a.addItem("Belt", "belt", "brown")

	rec := a.do(http.MethodPost, "/api/outfits", map[string]any{"items": []models.ID{shirt.ID, "missing"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodPost, "/api/outfits", map[string]any{"name": "Office", "items": []models.ID{shirt.ID, belt.ID}, "tags": []string{"work"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	outfit := decode[models.Outfit](t, rec)

	rec = a.do(http.MethodPatch, "/api/outfits/"+outfit.ID.String(), map[string]any{"name": "Office day"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Office day", decode[models.Outfit](t, rec).Name)

	rec = a.do(http.MethodGet, "/api/outfits?tag=work", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Outfit](t, rec), 1)

	rec = a.do(http.MethodPost, "/api/outfits/"+outfit.ID.String()+"/load", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Item](t, rec), 2)

	rec = a.do(http.MethodDelete, "/api/outfits/"+outfit.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec = a.do(method, "/api/outfits/"+outfit.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
	}
	rec = a.do(http.MethodPost, "/api/outfits/"+outfit.ID.String()+"/load", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog_ExportImportRoundTrip(t *testing.T) {
	a := newTestAPI(t)
	a.addItem("Shirt", "shirt", "white", "casual")

	rec := a.do(http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "wardrobe-backup-")
	exported := rec.Body.String()

	rec = a.do(http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, a.svcs.Catalog.Items(context.Background()))

	rec = a.do(http.MethodPost, "/api/import", exported)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	items := a.svcs.Catalog.Items(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "Shirt", items[0].Name)

	rec = a.do(http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[domainsvcs.Stats](t, rec)
	assert.Equal(t, 1, st.TotalItems)
	assert.Equal(t, "white", st.MostUsedColor)
}

func TestCatalog_ImportRejectsMalformed(t *testing.T) {
	a := newTestAPI(t)
	a.addItem("Shirt", "shirt", "white")

	for _, body := range []string{"not json", `{"items": []}`, `{"items": {}, "outfits": []}`} {
		rec := a.do(http.MethodPost, "/api/import", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Len(t, a.svcs.Catalog.Items(context.Background()), 1)
}

func TestVocabulary_AddRemove(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/api/vocabulary/colors", map[string]any{"value": "olive"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[map[string]bool](t, rec)["added"])

	rec = a.do(http.MethodPost, "/api/vocabulary/colors", map[string]any{"value": "OLIVE"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[map[string]bool](t, rec)["added"])

	rec = a.do(http.MethodGet, "/api/vocabulary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[models.Vocabulary](t, rec).Colors, "olive")

	rec = a.do(http.MethodDelete, "/api/vocabulary/colors/olive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[map[string]bool](t, rec)["removed"])

	rec = a.do(http.MethodPost, "/api/vocabulary/sizes", map[string]any{"value": "XL"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(http.MethodPost, "/api/vocabulary/tags", map[string]any{"value": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVocabulary_RemoveEscapedValues(t *testing.T) {
	a := newTestAPI(t)
	for _, value := range []string{"100%", "a/b"} {
		rec := a.do(http.MethodPost, "/api/vocabulary/tags", map[string]any{"value": value})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	for _, path := range []string{"/api/vocabulary/tags/100%25", "/api/vocabulary/tags/a%2Fb"} {
		rec := a.do(http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.True(t, decode[map[string]bool](t, rec)["removed"], path)
	}
	tags := a.svcs.Catalog.Vocabulary(context.Background()).Tags
	assert.NotContains(t, tags, "100%")
	assert.NotContains(t, tags, "a/b")
}

func TestClassify(t *testing.T) {
	t.Run("no provider", func(t *testing.T) {
		a := newTestAPI(t)
		rec := a.do(http.MethodPost, "/api/classify", map[string]any{"image": pngDataURI(t, color.Black)})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("palette", func(t *testing.T) {
		a := newTestAPI(t, appsvcs.WithClassifier(classifier.NewPalette()))
		rec := a.do(http.MethodPost, "/api/classify", map[string]any{"image": pngDataURI(t, color.Black)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		c := decode[models.Classification](t, rec)
		assert.Equal(t, "black", c.Color)
		assert.True(t, strings.HasPrefix(c.Provider, "palette"))
	})

	t.Run("raw body", func(t *testing.T) {
		a := newTestAPI(t, appsvcs.WithClassifier(classifier.NewPalette()))
		img, err := models.ParseDataURI(pngDataURI(t, color.White))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewReader(img.Data))
		req.Header.Set("Content-Type", "image/png")
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "white", decode[models.Classification](t, rec).Color)
	})

	t.Run("not an image", func(t *testing.T) {
		a := newTestAPI(t, appsvcs.WithClassifier(classifier.NewPalette()))
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello world"))
		rec := a.do(http.MethodPost, "/api/classify", map[string]any{"image": uri})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestMedia_StreamsStoredImages(t *testing.T) {
	store := media.NewBlob(blob.NewMemory())
	a := newTestAPI(t, appsvcs.WithImageStore(store))
	a.svcs.Media = store

	rec := a.do(http.MethodPost, "/api/items", map[string]any{
		"name": "Shirt", "category": "shirt", "color": "white",
		"images": []string{pngDataURI(t, color.White)},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[models.Item](t, rec)
	require.Len(t, item.Images, 1)
	require.True(t, strings.HasPrefix(item.Images[0], "/media/images/id-1/"), item.Images[0])

	rec = a.do(http.MethodGet, item.Images[0], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")

	for _, path := range []string{"/media/images/id-1/missing.png", "/media/secrets.txt"} {
		rec = a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
