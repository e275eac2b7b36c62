package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

func TestFilterItems_EmptySpecKeepsStoreOrder(t *testing.T) {
	items := wardrobe()
	got := FilterItems(items, FilterSpec{})
	if diff := cmp.Diff(ids(items), ids(got)); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
}

func TestFilterItems_DoesNotMutateInput(t *testing.T) {
	items := wardrobe()
	_ = FilterItems(items, FilterSpec{SortBy: SortNameDesc})
	assert.Equal(t, []models.ID{"a", "b", "c", "d", "e"}, ids(items))
}

func TestFilterItems_Constraints(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
		want []models.ID
	}{
		{"category exact", FilterSpec{Category: "dress"}, []models.ID{"c"}},
		{"category ignores case", FilterSpec{Category: "Dress"}, []models.ID{"c"}},
		{"categories any-of", FilterSpec{Categories: []string{"blazer", "shoes"}}, []models.ID{"a", "d"}},
		{"color exact", FilterSpec{Color: "cream"}, []models.ID{"b"}},
		{"colors any-of", FilterSpec{Colors: []string{"white", "navy"}}, []models.ID{"a", "e"}},
		{"tag contained", FilterSpec{Tag: "work"}, []models.ID{"a"}},
		{"tags any-of", FilterSpec{Tags: []string{"casual", "evening"}}, []models.ID{"b", "c"}},
		{"search name", FilterSpec{Search: "BLAZER"}, []models.ID{"a"}},
		{"search notes", FilterSpec{Search: "anna"}, []models.ID{"e"}},
		{"search color", FilterSpec{Search: "camel"}, []models.ID{"d"}},
		{"search blank is no constraint", FilterSpec{Search: "   "}, []models.ID{"a", "b", "c", "d", "e"}},
		{"constraints AND together", FilterSpec{Colors: []string{"navy", "cream"}, Tag: "casual"}, []models.ID{"b"}},
		{"nothing matches", FilterSpec{Category: "bag"}, []models.ID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterItems(wardrobe(), tt.spec))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterItems_DateRange(t *testing.T) {
	t.Run("dateTo covers the whole day", func(t *testing.T) {
		spec := FilterSpec{DateTo: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)}
		got := ids(FilterItems(wardrobe(), spec))
		assert.Equal(t, []models.ID{"a", "b", "d", "e"}, got, "missing dates sort as the oldest and pass an upper bound")
	})

	t.Run("dateFrom is inclusive and excludes undated items", func(t *testing.T) {
		spec := FilterSpec{DateFrom: day(2).Time}
		got := ids(FilterItems(wardrobe(), spec))
		assert.Equal(t, []models.ID{"a", "c", "d"}, got)
	})
}

func TestFilterItems_Sort(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
		want []models.ID
	}{
		{"date_desc", FilterSpec{SortBy: SortDateDesc}, []models.ID{"c", "a", "d", "b", "e"}},
		{"date_asc", FilterSpec{SortBy: SortDateAsc}, []models.ID{"e", "b", "d", "a", "c"}},
		{"name_asc root collation", FilterSpec{SortBy: SortNameAsc}, []models.ID{"c", "b", "a", "e", "d"}},
		{"name_desc", FilterSpec{SortBy: SortNameDesc}, []models.ID{"d", "e", "a", "b", "c"}},
		{"name_asc polish", FilterSpec{SortBy: SortNameAsc, Locale: language.Polish}, []models.ID{"c", "b", "a", "e", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterItems(wardrobe(), tt.spec))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterItems_SortIsStable(t *testing.T) {
	items := []models.Item{
		{ID: "1", Name: "Shirt", CreatedAt: day(1)},
		{ID: "2", Name: "shirt", CreatedAt: day(1)},
		{ID: "3", Name: "Shirt", CreatedAt: day(1)},
	}
	assert.Equal(t, []models.ID{"1", "2", "3"}, ids(FilterItems(items, FilterSpec{SortBy: SortNameAsc})))
	assert.Equal(t, []models.ID{"1", "2", "3"}, ids(FilterItems(items, FilterSpec{SortBy: SortDateDesc})))
}

func TestFilterOutfits(t *testing.T) {
	items := wardrobe()
	byID := map[models.ID]models.Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	lookup := func(id models.ID) (models.Item, bool) {
		it, ok := byID[id]
		return it, ok
	}
	outfits := []models.Outfit{
		{ID: "o1", Name: "Office", Items: []models.ID{"a", "b"}, Tags: []string{"work"}, CreatedAt: day(4)},
		{ID: "o2", Name: "Party", Items: []models.ID{"c", "gone"}, CreatedAt: day(6)},
		{ID: "o3", Name: "Ghost", Items: []models.ID{"gone"}, CreatedAt: day(1)},
	}

	tests := []struct {
		name string
		spec FilterSpec
		want []models.ID
	}{
		{"no constraints", FilterSpec{}, []models.ID{"o1", "o2", "o3"}},
		{"search outfit name", FilterSpec{Search: "party"}, []models.ID{"o2"}},
		{"search resolved item name", FilterSpec{Search: "sweater"}, []models.ID{"o1"}},
		{"color of any item", FilterSpec{Color: "black"}, []models.ID{"o2"}},
		{"dangling refs never match item constraints", FilterSpec{Category: "dress"}, []models.ID{"o2"}},
		{"outfit tag", FilterSpec{Tag: "work"}, []models.ID{"o1"}},
		{"date_desc", FilterSpec{SortBy: SortDateDesc}, []models.ID{"o2", "o1", "o3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOutfits(outfits, tt.spec, lookup)
			gotIDs := make([]models.ID, len(got))
			for i, o := range got {
				gotIDs[i] = o.ID
			}
			if diff := cmp.Diff(tt.want, gotIDs); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("name_desc")
	require.NoError(t, err)
	assert.Equal(t, SortNameDesc, o)

	o, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, o)

	_, err = ParseSortOrder("price_asc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
