package models

import (
	"fmt"
	"slices"
	"strings"
)

// VocabularyKind names one of the three editable value lists.
type VocabularyKind string

const (
	KindCategories VocabularyKind = "categories"
	KindColors     VocabularyKind = "colors"
	KindTags       VocabularyKind = "tags"
)

// ParseVocabularyKind maps a path or flag value to a VocabularyKind.
func ParseVocabularyKind(s string) (VocabularyKind, error) {
	switch k := VocabularyKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCategories, KindColors, KindTags:
		return k, nil
	case "category":
		return KindCategories, nil
	case "color":
		return KindColors, nil
	case "tag":
		return KindTags, nil
	default:
		return "", fmt.Errorf("unknown vocabulary kind %q", s)
	}
}

// Vocabulary holds the values items may use for category, color and tags.
// Each list keeps insertion order and holds no case-insensitive duplicates.
type Vocabulary struct {
	Categories []string `json:"categories" yaml:"categories"`
	Colors     []string `json:"colors" yaml:"colors"`
	Tags       []string `json:"tags" yaml:"tags"`
}

// DefaultVocabulary returns the built-in seed lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Categories: []string{"shirt", "trousers", "dress", "blazer", "skirt", "shoes", "belt", "jewelry", "scarf", "sweater", "jacket", "bag"},
		Colors:     []string{"navy", "beige", "cream", "white", "black", "burgundy", "camel", "grey", "brown", "khaki"},
		Tags:       []string{"casual", "elegant", "sport", "work", "evening"},
	}
}

// Normalize trims every value and drops blanks and duplicates.
func (v Vocabulary) Normalize() Vocabulary {
	return Vocabulary{
		Categories: uniqueValues(v.Categories),
		Colors:     uniqueValues(v.Colors),
		Tags:       uniqueValues(v.Tags),
	}
}

// Clone returns a copy that shares no slices with v.
func (v Vocabulary) Clone() Vocabulary {
	return Vocabulary{
		Categories: slices.Clone(v.Categories),
		Colors:     slices.Clone(v.Colors),
		Tags:       slices.Clone(v.Tags),
	}
}

// List returns the values of one kind.
func (v Vocabulary) List(kind VocabularyKind) []string {
	switch kind {
	case KindCategories:
		return v.Categories
	case KindColors:
		return v.Colors
	case KindTags:
		return v.Tags
	}
	return nil
}

// Has reports whether value is in the list of kind, ignoring case.
func (v Vocabulary) Has(kind VocabularyKind, value string) bool {
	return indexFold(v.List(kind), strings.TrimSpace(value)) >= 0
}

// Canonical returns the stored spelling of value, or false if it is unknown.
func (v Vocabulary) Canonical(kind VocabularyKind, value string) (string, bool) {
	list := v.List(kind)
	if i := indexFold(list, strings.TrimSpace(value)); i >= 0 {
		return list[i], true
	}
	return "", false
}

// Add appends value to the list of kind. It returns false when the value is
// already present.
func (v *Vocabulary) Add(kind VocabularyKind, value string) bool {
	value = strings.TrimSpace(value)
	list := v.List(kind)
	if value == "" || indexFold(list, value) >= 0 {
		return false
	}
	v.set(kind, append(slices.Clone(list), value))
	return true
}

// Remove deletes value from the list of kind. Items already using the value
// keep it.
func (v *Vocabulary) Remove(kind VocabularyKind, value string) bool {
	list := v.List(kind)
	i := indexFold(list, strings.TrimSpace(value))
	if i < 0 {
		return false
	}
	v.set(kind, slices.Delete(slices.Clone(list), i, i+1))
	return true
}

func (v *Vocabulary) set(kind VocabularyKind, list []string) {
	switch kind {
	case KindCategories:
		v.Categories = list
	case KindColors:
		v.Colors = list
	case KindTags:
		v.Tags = list
	}
}

func indexFold(list []string, value string) int {
	return slices.IndexFunc(list, func(s string) bool { return strings.EqualFold(s, value) })
}

func uniqueValues(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && indexFold(out, s) < 0 {
			out = append(out, s)
		}
	}
	return out
}
