// Package services contains stateless domain services for the wardrobe bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have no dependencies beyond the domain layer and small pure libraries.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// ValidateName rejects control characters left in a name after NewItemName
// has trimmed it and collapsed whitespace runs. Tabs and newlines count as
// whitespace there, so only the non-space controls such as NUL and DEL reach
// this check.
func ValidateName(name models.ItemName) error {
	for _, r := range name.String() {
		if unicode.IsControl(r) {
			return fmt.Errorf("name must not contain control characters")
		}
	}
	return nil
}

// ValidateItem checks a fully-built Item against the vocabulary that is
// current when it is added or updated. Category, color and tags are rewritten
// to their stored spelling; tags lose duplicates.
func ValidateItem(item *models.Item, vocab models.Vocabulary) error {
	if item == nil {
		return domain.Invalid(domain.ErrInvalidItem, "item cannot be nil")
	}
	if item.ID == "" {
		return domain.Invalid(domain.ErrInvalidItem, "id must be set")
	}

	name, err := models.NewItemName(item.Name)
	if err != nil {
		return domain.Invalid(domain.ErrInvalidItem, "%v", err)
	}
	if err := ValidateName(name); err != nil {
		return domain.Invalid(domain.ErrInvalidItem, "invalid name: %v", err)
	}
	item.Name = name.String()

	category, ok := vocab.Canonical(models.KindCategories, item.Category)
	if !ok {
		return domain.Invalid(domain.ErrInvalidItem, "category %q is not in the vocabulary", item.Category)
	}
	item.Category = category

	color, ok := vocab.Canonical(models.KindColors, item.Color)
	if !ok {
		return domain.Invalid(domain.ErrInvalidItem, "color %q is not in the vocabulary", item.Color)
	}
	item.Color = color

	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tag, ok := vocab.Canonical(models.KindTags, t)
		if !ok {
			return domain.Invalid(domain.ErrInvalidItem, "tag %q is not in the vocabulary", t)
		}
		if !containsFold(tags, tag) {
			tags = append(tags, tag)
		}
	}
	item.Tags = tags

	if item.Images == nil {
		item.Images = []string{}
	}
	if item.UsageCount < 0 {
		return domain.Invalid(domain.ErrInvalidItem, "usage count must not be negative")
	}
	return nil
}

// ValidateOutfit checks an outfit before it is persisted. An outfit always
// references at least one item.
func ValidateOutfit(outfit *models.Outfit, vocab models.Vocabulary) error {
	if outfit == nil {
		return domain.Invalid(domain.ErrInvalidOutfit, "outfit cannot be nil")
	}
	if len(outfit.Items) == 0 {
		return domain.ErrEmptyOutfit
	}

	name, err := models.NewItemName(outfit.Name)
	if err != nil {
		return domain.Invalid(domain.ErrInvalidOutfit, "%v", err)
	}
	if err := ValidateName(name); err != nil {
		return domain.Invalid(domain.ErrInvalidOutfit, "invalid name: %v", err)
	}
	outfit.Name = name.String()

	tags := make([]string, 0, len(outfit.Tags))
	for _, t := range outfit.Tags {
		tag, ok := vocab.Canonical(models.KindTags, t)
		if !ok {
			return domain.Invalid(domain.ErrInvalidOutfit, "tag %q is not in the vocabulary", t)
		}
		if !containsFold(tags, tag) {
			tags = append(tags, tag)
		}
	}
	outfit.Tags = tags
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
