package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

func sampleDocument() models.Document {
	worn := day(9)
	vocab := models.DefaultVocabulary()
	return models.Document{
		Items: wardrobe(),
		Outfits: []models.Outfit{
			{ID: "o1", Name: "Office", Items: []models.ID{"a", "b", "deleted"}, Tags: []string{"work"}, CreatedAt: day(4), LastWorn: &worn},
		},
		Categories: vocab.Categories,
		Colors:     append(vocab.Colors, "teal"),
		Tags:       vocab.Tags,
	}
}

func TestExport_Envelope(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	exp := Export(sampleDocument(), now)

	data, err := json.Marshal(exp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2.0", raw["version"])
	assert.Equal(t, "2025-02-01T09:00:00Z", raw["exportDate"])
	for _, key := range []string{"items", "outfits", "colors", "categories", "tags"} {
		assert.Contains(t, raw, key)
	}
}

func TestExport_EmptyCatalogWritesArrays(t *testing.T) {
	data, err := json.Marshal(Export(models.Document{}, time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items":[]`)
	assert.Contains(t, string(data), `"outfits":[]`)
}

func TestImportExport_RoundTrip(t *testing.T) {
	orig := sampleDocument()
	data, err := json.Marshal(Export(orig, time.Now()))
	require.NoError(t, err)

	got, err := DecodeImport(data, models.DefaultVocabulary())
	require.NoError(t, err)

	if diff := cmp.Diff(orig, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeImport_Shape(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid minimal", `{"items":[],"outfits":[]}`, false},
		{"missing items", `{"outfits":[]}`, true},
		{"missing outfits", `{"items":[]}`, true},
		{"items not an array", `{"items":{},"outfits":[]}`, true},
		{"outfits null", `{"items":[],"outfits":null}`, true},
		{"not json", `wardrobe`, true},
		{"top-level array", `[]`, true},
		{"item of wrong type", `{"items":[42],"outfits":[]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeImport([]byte(tt.input), models.DefaultVocabulary())
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidImport)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeImport_VocabularyDefaultsAndAbsorption(t *testing.T) {
	doc, err := DecodeImport([]byte(`{
		"items":[{"id":1,"name":"Kilt","category":"kilt","color":"tartan","tags":["festival"]}],
		"outfits":[],
		"colors":["red"]
	}`), models.DefaultVocabulary())
	require.NoError(t, err)

	defaults := models.DefaultVocabulary()
	assert.Equal(t, []string{"red", "tartan"}, doc.Colors)
	assert.Equal(t, append(defaults.Categories, "kilt"), doc.Categories)
	assert.Equal(t, append(defaults.Tags, "festival"), doc.Tags)
}

func TestEncodeDecodeDocument(t *testing.T) {
	orig := sampleDocument()
	data, err := EncodeDocument(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"items\"", "blob is indented with two spaces")

	got, err := DecodeDocument(data, models.DefaultVocabulary())
	require.NoError(t, err)
	if diff := cmp.Diff(orig, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDocument_Lenient(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{}`), models.DefaultVocabulary())
	require.NoError(t, err)
	assert.NotNil(t, doc.Items)
	assert.NotNil(t, doc.Outfits)
	assert.Equal(t, models.DefaultVocabulary().Colors, doc.Colors)

	_, err = DecodeDocument([]byte(`{"items":`), models.DefaultVocabulary())
	assert.Error(t, err)
}

func TestDecodeDocument_EmptyListStaysEmpty(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"items":[],"outfits":[],"tags":[],"colors":null}`), models.DefaultVocabulary())
	require.NoError(t, err)
	assert.NotNil(t, doc.Tags)
	assert.Empty(t, doc.Tags, "a stored empty list is kept")
	assert.Equal(t, models.DefaultVocabulary().Colors, doc.Colors, "null falls back")
	assert.Equal(t, models.DefaultVocabulary().Categories, doc.Categories, "absent falls back")
}

func TestDecoders_UseGivenDefaults(t *testing.T) {
	seed := models.Vocabulary{Categories: []string{"coat"}, Colors: []string{"olive"}, Tags: []string{"rain"}}

	doc, err := DecodeDocument([]byte(`{}`), seed)
	require.NoError(t, err)
	assert.Equal(t, seed, doc.Vocabulary())

	doc, err = DecodeImport([]byte(`{"items":[],"outfits":[]}`), seed)
	require.NoError(t, err)
	assert.Equal(t, seed, doc.Vocabulary())
}

func TestDecodeImport_AbsorbsOutfitTags(t *testing.T) {
	doc, err := DecodeImport([]byte(`{
		"items":[],
		"outfits":[{"id":"o1","name":"Gala","items":[],"tags":["black-tie"]}],
		"tags":["casual"]
	}`), models.DefaultVocabulary())
	require.NoError(t, err)
	assert.Equal(t, []string{"casual", "black-tie"}, doc.Tags)
}
