package services

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// SortOrder selects how filtered records are ordered.
type SortOrder string

const (
	SortNone     SortOrder = ""
	SortDateDesc SortOrder = "date_desc"
	SortDateAsc  SortOrder = "date_asc"
	SortNameAsc  SortOrder = "name_asc"
	SortNameDesc SortOrder = "name_desc"
)

// ParseSortOrder validates a sortBy value. The empty string keeps store order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.TrimSpace(s)); o {
	case SortNone, SortDateDesc, SortDateAsc, SortNameAsc, SortNameDesc:
		return o, nil
	default:
		return "", domain.Invalid(domain.ErrInvalidFilter, "unknown sortBy %q", s)
	}
}

// FilterSpec lists optional constraints. Zero fields impose nothing and all
// set constraints must hold.
type FilterSpec struct {
	Category   string
	Categories []string
	Color      string
	Colors     []string
	Tag        string
	Tags       []string
	Search     string
	DateFrom   time.Time
	DateTo     time.Time
	SortBy     SortOrder
	// Locale drives name collation. The zero tag uses the root collation.
	Locale language.Tag
}

// Record is the filterable view of one catalog entry.
type Record struct {
	Name       string
	Categories []string
	Colors     []string
	Tags       []string
	// Text holds every field the search term is matched against.
	Text    []string
	AddedAt time.Time
}

// ItemRecord is the Record view of an item.
func ItemRecord(item models.Item) Record {
	return Record{
		Name:       item.Name,
		Categories: []string{item.Category},
		Colors:     []string{item.Color},
		Tags:       item.Tags,
		Text:       []string{item.Name, item.Category, item.Color, item.Notes},
		AddedAt:    item.AddedAt(),
	}
}

// OutfitRecord returns a Record view of an outfit whose category, color and
// search fields come from the items it references. Unresolvable references
// are skipped.
func OutfitRecord(lookup func(models.ID) (models.Item, bool)) func(models.Outfit) Record {
	return func(o models.Outfit) Record {
		rec := Record{
			Name:    o.Name,
			Tags:    slices.Clone(o.Tags),
			Text:    []string{o.Name},
			AddedAt: o.AddedAt(),
		}
		for _, id := range o.Items {
			item, ok := lookup(id)
			if !ok {
				continue
			}
			rec.Categories = append(rec.Categories, item.Category)
			rec.Colors = append(rec.Colors, item.Color)
			rec.Tags = append(rec.Tags, item.Tags...)
			rec.Text = append(rec.Text, item.Name, item.Category, item.Color)
		}
		return rec
	}
}

// Filter returns the records of in that satisfy spec, ordered by spec.SortBy.
// Sorting is stable, so equal keys keep their store order. The input slice is
// never modified.
func Filter[T any](in []T, spec FilterSpec, view func(T) Record) []T {
	type entry struct {
		value T
		rec   Record
	}

	needle := strings.ToLower(strings.TrimSpace(spec.Search))
	var end time.Time
	if !spec.DateTo.IsZero() {
		y, m, d := spec.DateTo.Date()
		end = time.Date(y, m, d, 0, 0, 0, 0, spec.DateTo.Location()).AddDate(0, 0, 1)
	}

	matched := make([]entry, 0, len(in))
	for _, v := range in {
		rec := view(v)
		if !matches(rec, spec, needle, end) {
			continue
		}
		matched = append(matched, entry{value: v, rec: rec})
	}

	switch spec.SortBy {
	case SortDateDesc:
		slices.SortStableFunc(matched, func(a, b entry) int { return b.rec.AddedAt.Compare(a.rec.AddedAt) })
	case SortDateAsc:
		slices.SortStableFunc(matched, func(a, b entry) int { return a.rec.AddedAt.Compare(b.rec.AddedAt) })
	case SortNameAsc, SortNameDesc:
		col := collate.New(spec.Locale, collate.IgnoreCase)
		dir := 1
		if spec.SortBy == SortNameDesc {
			dir = -1
		}
		slices.SortStableFunc(matched, func(a, b entry) int {
			return dir * col.CompareString(a.rec.Name, b.rec.Name)
		})
	}

	out := make([]T, len(matched))
	for i, e := range matched {
		out[i] = e.value
	}
	return out
}

// FilterItems applies spec to items.
func FilterItems(items []models.Item, spec FilterSpec) []models.Item {
	return Filter(items, spec, ItemRecord)
}

// FilterOutfits applies spec to outfits, resolving item references through lookup.
func FilterOutfits(outfits []models.Outfit, spec FilterSpec, lookup func(models.ID) (models.Item, bool)) []models.Outfit {
	return Filter(outfits, spec, OutfitRecord(lookup))
}

func matches(rec Record, spec FilterSpec, needle string, end time.Time) bool {
	if spec.Category != "" && !anyFold(rec.Categories, spec.Category) {
		return false
	}
	if len(spec.Categories) > 0 && !intersects(rec.Categories, spec.Categories) {
		return false
	}
	if spec.Color != "" && !anyFold(rec.Colors, spec.Color) {
		return false
	}
	if len(spec.Colors) > 0 && !intersects(rec.Colors, spec.Colors) {
		return false
	}
	if spec.Tag != "" && !anyFold(rec.Tags, spec.Tag) {
		return false
	}
	if len(spec.Tags) > 0 && !intersects(rec.Tags, spec.Tags) {
		return false
	}
	if needle != "" && !slices.ContainsFunc(rec.Text, func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}) {
		return false
	}
	if !spec.DateFrom.IsZero() && rec.AddedAt.Before(spec.DateFrom) {
		return false
	}
	if !end.IsZero() && !rec.AddedAt.Before(end) {
		return false
	}
	return true
}

func anyFold(values []string, want string) bool {
	return slices.ContainsFunc(values, func(v string) bool { return strings.EqualFold(v, want) })
}

func intersects(values, allowed []string) bool {
	return slices.ContainsFunc(allowed, func(a string) bool { return anyFold(values, a) })
}
