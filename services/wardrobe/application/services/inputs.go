package services

import (
	"time"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// ItemInput carries the caller-supplied fields of a new item.
// Images are data URIs or previously stored references.
type ItemInput struct {
	Name         string
	Category     string
	Color        string
	Tags         []string
	Notes        string
	Images       []string
	AutoClassify bool // fill a blank category or color from the first image
}

// ItemPatch lists the fields to change; nil fields are left alone.
type ItemPatch struct {
	Name     *string
	Category *string
	Color    *string
	Tags     *[]string
	Notes    *string
	Images   *[]string
}

// OutfitInput creates an outfit from an explicit item selection.
type OutfitInput struct {
	Name  string
	Items []models.ID
	Tags  []string
}

// OutfitPatch lists the outfit fields to change; nil fields are left alone.
type OutfitPatch struct {
	Name     *string
	Items    *[]models.ID
	Tags     *[]string
	LastWorn *time.Time
}
