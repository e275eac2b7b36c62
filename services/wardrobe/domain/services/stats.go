package services

import (
	"slices"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// NoData is reported for the most-used color and category of an empty catalog.
const NoData = "no data"

// topUsedLimit caps Stats.MostWorn.
const topUsedLimit = 5

// Stats is a derived summary of the item collection.
type Stats struct {
	TotalItems           int            `json:"totalItems"`
	TotalOutfits         int            `json:"totalOutfits"`
	ColorDistribution    map[string]int `json:"colorDistribution"`
	CategoryDistribution map[string]int `json:"categoryDistribution"`
	MostUsedColor        string         `json:"mostUsedColor"`
	MostUsedCategory     string         `json:"mostUsedCategory"`
	MostWorn             []models.Item  `json:"mostWorn"`
}

// ComputeStats summarizes items. Ties for most-used color or category go to
// the value seen first in collection order. MostWorn holds at most five items
// with a non-zero usage count, highest first, keeping collection order on ties.
func ComputeStats(items []models.Item, outfitCount int) Stats {
	st := Stats{
		TotalItems:           len(items),
		TotalOutfits:         outfitCount,
		ColorDistribution:    map[string]int{},
		CategoryDistribution: map[string]int{},
		MostUsedColor:        NoData,
		MostUsedCategory:     NoData,
		MostWorn:             []models.Item{},
	}

	var colorOrder, categoryOrder []string
	for _, item := range items {
		if _, seen := st.ColorDistribution[item.Color]; !seen {
			colorOrder = append(colorOrder, item.Color)
		}
		st.ColorDistribution[item.Color]++
		if _, seen := st.CategoryDistribution[item.Category]; !seen {
			categoryOrder = append(categoryOrder, item.Category)
		}
		st.CategoryDistribution[item.Category]++
	}
	if v, ok := firstMax(colorOrder, st.ColorDistribution); ok {
		st.MostUsedColor = v
	}
	if v, ok := firstMax(categoryOrder, st.CategoryDistribution); ok {
		st.MostUsedCategory = v
	}

	for _, item := range items {
		if item.UsageCount > 0 {
			st.MostWorn = append(st.MostWorn, item.Clone())
		}
	}
	slices.SortStableFunc(st.MostWorn, func(a, b models.Item) int { return b.UsageCount - a.UsageCount })
	if len(st.MostWorn) > topUsedLimit {
		st.MostWorn = st.MostWorn[:topUsedLimit]
	}
	return st
}

func firstMax(order []string, counts map[string]int) (string, bool) {
	best, bestN := "", 0
	for _, k := range order {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best, bestN > 0
}
