package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Item is a single piece of clothing in the catalog.
type Item struct {
	ID         ID        `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
	Tags       []string  `json:"tags"`
	Notes      string    `json:"notes,omitempty"`
	Images     []string  `json:"images"`
	UsageCount int       `json:"usageCount"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

// AddedAt is the date used for sorting and range filters.
func (i Item) AddedAt() time.Time {
	if i.CreatedAt.IsZero() {
		return i.UpdatedAt.Time
	}
	return i.CreatedAt.Time
}

// HasTag reports whether tag is attached to the item, ignoring case.
func (i Item) HasTag(tag string) bool {
	return slices.ContainsFunc(i.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
}

// Clone returns a copy that shares no slices with i.
func (i Item) Clone() Item {
	i.Tags = slices.Clone(i.Tags)
	i.Images = slices.Clone(i.Images)
	return i
}

// UnmarshalJSON also reads the field names used by older browser exports
// (dateAdded, lastModified, imageData).
func (i *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var aux struct {
		plain
		DateAdded    *Timestamp `json:"dateAdded"`
		LastModified *Timestamp `json:"lastModified"`
		ImageData    string     `json:"imageData"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*i = Item(aux.plain)
	if i.CreatedAt.IsZero() && aux.DateAdded != nil {
		i.CreatedAt = *aux.DateAdded
	}
	if i.UpdatedAt.IsZero() && aux.LastModified != nil {
		i.UpdatedAt = *aux.LastModified
	}
	if len(i.Images) == 0 && aux.ImageData != "" {
		i.Images = []string{aux.ImageData}
	}
	if i.UsageCount < 0 {
		i.UsageCount = 0
	}
	return nil
}
