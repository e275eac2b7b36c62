package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// ExportVersion is written into every export document.
const ExportVersion = "2.0"

// ExportDocument is the portable backup format.
type ExportDocument struct {
	Items      []models.Item    `json:"items"`
	Outfits    []models.Outfit  `json:"outfits"`
	Colors     []string         `json:"colors"`
	Categories []string         `json:"categories"`
	Tags       []string         `json:"tags"`
	ExportDate models.Timestamp `json:"exportDate"`
	Version    string           `json:"version"`
}

// Export wraps doc as an export document stamped with now.
func Export(doc models.Document, now time.Time) ExportDocument {
	return ExportDocument{
		Items:      nonNil(doc.Items),
		Outfits:    nonNil(doc.Outfits),
		Colors:     nonNil(doc.Colors),
		Categories: nonNil(doc.Categories),
		Tags:       nonNil(doc.Tags),
		ExportDate: models.At(now),
		Version:    ExportVersion,
	}
}

// DecodeImport parses an export document. items and outfits must be present
// JSON arrays; anything else fails with ErrInvalidImport. Vocabulary lists
// missing from the document fall back to defaults, and every value used by an
// imported item or outfit is added to its list.
func DecodeImport(data []byte, defaults models.Vocabulary) (models.Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Document{}, domain.Invalid(domain.ErrInvalidImport, "not a JSON object: %v", err)
	}
	for _, key := range []string{"items", "outfits"} {
		if !isArray(fields[key]) {
			return models.Document{}, domain.Invalid(domain.ErrInvalidImport, "%q must be an array", key)
		}
	}

	var doc models.Document
	if err := json.Unmarshal(fields["items"], &doc.Items); err != nil {
		return models.Document{}, domain.Invalid(domain.ErrInvalidImport, "items: %v", err)
	}
	if err := json.Unmarshal(fields["outfits"], &doc.Outfits); err != nil {
		return models.Document{}, domain.Invalid(domain.ErrInvalidImport, "outfits: %v", err)
	}

	vocab := vocabularyOr(fields, defaults)
	vocab = AbsorbVocabulary(vocab, doc.Items, doc.Outfits)

	doc.Categories, doc.Colors, doc.Tags = vocab.Categories, vocab.Colors, vocab.Tags
	return doc, nil
}

// AbsorbVocabulary returns vocab extended with every category, color and tag
// used by items, and every tag used by outfits.
func AbsorbVocabulary(vocab models.Vocabulary, items []models.Item, outfits []models.Outfit) models.Vocabulary {
	vocab = vocab.Clone()
	for _, item := range items {
		vocab.Add(models.KindCategories, item.Category)
		vocab.Add(models.KindColors, item.Color)
		for _, t := range item.Tags {
			vocab.Add(models.KindTags, t)
		}
	}
	for _, o := range outfits {
		for _, t := range o.Tags {
			vocab.Add(models.KindTags, t)
		}
	}
	return vocab
}

// EncodeDocument renders the persisted blob with two-space indentation.
func EncodeDocument(doc models.Document) ([]byte, error) {
	doc.Items = nonNil(doc.Items)
	doc.Outfits = nonNil(doc.Outfits)
	doc.Colors = nonNil(doc.Colors)
	doc.Categories = nonNil(doc.Categories)
	doc.Tags = nonNil(doc.Tags)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a persisted blob. Unlike DecodeImport it tolerates
// missing collections. A vocabulary list that is absent or null falls back to
// defaults; a present empty list stays empty.
func DecodeDocument(data []byte, defaults models.Vocabulary) (models.Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Document{}, fmt.Errorf("decode catalog: %w", err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode catalog: %w", err)
	}
	doc.Items = nonNil(doc.Items)
	doc.Outfits = nonNil(doc.Outfits)

	vocab := vocabularyOr(fields, defaults)
	doc.Categories, doc.Colors, doc.Tags = vocab.Categories, vocab.Colors, vocab.Tags
	return doc, nil
}

// vocabularyOr reads the three vocabulary lists from fields, taking each
// list from defaults when its key is absent, null or not an array.
func vocabularyOr(fields map[string]json.RawMessage, defaults models.Vocabulary) models.Vocabulary {
	v := models.Vocabulary{
		Categories: listOr(fields["categories"], defaults.Categories),
		Colors:     listOr(fields["colors"], defaults.Colors),
		Tags:       listOr(fields["tags"], defaults.Tags),
	}.Normalize()
	v.Categories = nonNil(v.Categories)
	v.Colors = nonNil(v.Colors)
	v.Tags = nonNil(v.Tags)
	return v
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func listOr(raw json.RawMessage, fallback []string) []string {
	if !isArray(raw) {
		return slices.Clone(fallback)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return slices.Clone(fallback)
	}
	return list
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
