package services

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// Rand is the randomness a Suggester draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// colorMatches lists, per anchor color, the colors that pair well with it.
// The table is not symmetric: black lists cream, but cream does not list black.
var colorMatches = map[string][]string{
	"navy":     {"cream", "white", "beige", "camel"},
	"beige":    {"navy", "white", "burgundy", "brown"},
	"cream":    {"navy", "camel", "grey", "burgundy"},
	"white":    {"navy", "black", "camel", "burgundy"},
	"black":    {"white", "cream", "grey", "camel"},
	"burgundy": {"cream", "beige", "grey", "navy"},
	"camel":    {"navy", "cream", "white", "brown"},
	"grey":     {"white", "navy", "burgundy", "black"},
	"brown":    {"beige", "cream", "camel", "khaki"},
	"khaki":    {"white", "cream", "brown", "navy"},
}

const (
	minCompanions = 2
	maxCompanions = 4
)

// CompatibleColors returns the colors listed as matches for color.
func CompatibleColors(color string) []string {
	return slices.Clone(colorMatches[strings.ToLower(strings.TrimSpace(color))])
}

// Compatible reports whether candidate may join an outfit anchored on anchor.
// Same-colored items are always compatible.
func Compatible(anchor, candidate string) bool {
	if strings.EqualFold(anchor, candidate) {
		return true
	}
	return slices.ContainsFunc(colorMatches[strings.ToLower(anchor)], func(c string) bool {
		return strings.EqualFold(c, candidate)
	})
}

// Suggester builds a random, color-coordinated outfit.
type Suggester struct {
	rand Rand
}

// NewSuggester returns a Suggester drawing from r. A nil r uses the global
// math/rand/v2 source.
func NewSuggester(r Rand) *Suggester {
	if r == nil {
		r = globalRand{}
	}
	return &Suggester{rand: r}
}

// Suggest picks a random anchor, then between two and four companions whose
// color is listed for the anchor's color or equal to it, without repeats.
// Fewer companions are returned when the pool runs out. The anchor is first.
func (s *Suggester) Suggest(items []models.Item) ([]models.Item, error) {
	if len(items) < 2 {
		return nil, domain.ErrNotEnoughItems
	}

	at := s.rand.IntN(len(items))
	anchor := items[at]

	pool := make([]models.Item, 0, len(items)-1)
	for i, item := range items {
		if i != at && Compatible(anchor.Color, item.Color) {
			pool = append(pool, item)
		}
	}

	target := minCompanions + s.rand.IntN(maxCompanions-minCompanions+1)
	out := []models.Item{anchor.Clone()}
	for len(out)-1 < target && len(pool) > 0 {
		i := s.rand.IntN(len(pool))
		out = append(out, pool[i].Clone())
		pool = slices.Delete(pool, i, i+1)
	}
	return out, nil
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
