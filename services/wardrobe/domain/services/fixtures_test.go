package services

import (
	"time"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

func day(d int) models.Timestamp {
	return models.At(time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC))
}

func wardrobe() []models.Item {
	return []models.Item{
		{ID: "a", Name: "Navy blazer", Category: "blazer", Color: "navy", Tags: []string{"work", "elegant"}, CreatedAt: day(3)},
		{ID: "b", Name: "Cream sweater", Category: "sweater", Color: "cream", Tags: []string{"casual"}, Notes: "cashmere", CreatedAt: day(1)},
		{ID: "c", Name: "black dress", Category: "dress", Color: "black", Tags: []string{"evening"}, CreatedAt: day(5)},
		{ID: "d", Name: "Żółte buty", Category: "shoes", Color: "camel", UpdatedAt: day(2)},
		{ID: "e", Name: "Zebra scarf", Category: "scarf", Color: "white", Notes: "gift from Anna"},
	}
}

func ids(items []models.Item) []models.ID {
	out := make([]models.ID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
