package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

func solidPNG(t *testing.T, c color.Color) models.ImageUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := range 80 {
		for x := range 100 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return models.ImageUpload{Data: buf.Bytes(), MIMEType: "image/png"}
}

func TestPalette_NearestVocabularyColor(t *testing.T) {
	vocab := models.DefaultVocabulary()
	tests := []struct {
		name string
		c    color.Color
		want string
	}{
		{"navy", color.RGBA{10, 10, 120, 255}, "navy"},
		{"off white", color.RGBA{250, 250, 250, 255}, "white"},
		{"dark", color.RGBA{12, 12, 12, 255}, "black"},
		{"wine", color.RGBA{120, 10, 40, 255}, "burgundy"},
	}
	p := NewPalette()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Classify(context.Background(), solidPNG(t, tt.c), vocab)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Color)
			assert.Empty(t, got.Category)
			assert.Greater(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestPalette_UsesStoredSpelling(t *testing.T) {
	vocab := models.Vocabulary{Colors: []string{"Navy", "mauve"}}
	got, err := NewPalette().Classify(context.Background(), solidPNG(t, color.RGBA{0, 0, 128, 255}), vocab)
	require.NoError(t, err)
	assert.Equal(t, "Navy", got.Color)
}

func TestPalette_Failures(t *testing.T) {
	p := NewPalette()
	ctx := context.Background()

	_, err := p.Classify(ctx, models.ImageUpload{Data: []byte("not an image"), MIMEType: "image/heic"}, models.DefaultVocabulary())
	assert.ErrorIs(t, err, domain.ErrClassificationFailed, "undecodable")

	_, err = p.Classify(ctx, solidPNG(t, color.Black), models.Vocabulary{Colors: []string{"mauve"}})
	assert.ErrorIs(t, err, domain.ErrClassificationFailed, "no swatches")
}

func geminiServer(t *testing.T, reply string, status int) (*httptest.Server, *[]byte) {
	t.Helper()
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		assert.Contains(t, r.URL.Path, ":generateContent")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
			return
		}
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": reply}}},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &body
}

func newTestGemini(t *testing.T, srv *httptest.Server) *Gemini {
	t.Helper()
	g, err := NewGemini(context.Background(), GeminiConfig{APIKey: "test", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return g
}

func TestGemini_MapsOntoVocabulary(t *testing.T) {
	srv, body := geminiServer(t, `{"name":"Wool blazer","category":"Blazer","color":"NAVY","tags":["work","party","Work"],"confidence":1.7}`, http.StatusOK)
	g := newTestGemini(t, srv)

	got, err := g.Classify(context.Background(), models.ImageUpload{Data: []byte{1, 2, 3}, MIMEType: "image/jpeg"}, models.DefaultVocabulary())
	require.NoError(t, err)
	want := models.Classification{Name: "Wool blazer", Category: "blazer", Color: "navy", Tags: []string{"work"}, Provider: "gemini:" + DefaultGeminiModel, Confidence: 1}
	assert.Equal(t, want, got)
	assert.Contains(t, string(*body), "image/jpeg", "request carries the image")
	assert.Contains(t, string(*body), "burgundy", "request carries the vocabulary")
}

func TestGemini_Failures(t *testing.T) {
	img := models.ImageUpload{Data: []byte{1}, MIMEType: "image/png"}

	srv, _ := geminiServer(t, `not json`, http.StatusOK)
	_, err := newTestGemini(t, srv).Classify(context.Background(), img, models.DefaultVocabulary())
	assert.ErrorIs(t, err, domain.ErrClassificationFailed, "malformed reply")

	srv, _ = geminiServer(t, "", http.StatusInternalServerError)
	_, err = newTestGemini(t, srv).Classify(context.Background(), img, models.DefaultVocabulary())
	assert.ErrorIs(t, err, domain.ErrClassificationFailed, "server error")
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{})
	assert.Error(t, err, "no API key")
}
