package models

import (
	"encoding/json"
	"slices"
	"time"
)

// Outfit is a named snapshot of item references. References may outlive the
// items they point to; readers skip the ones that no longer resolve.
type Outfit struct {
	ID        ID         `json:"id"`
	Name      string     `json:"name"`
	Items     []ID       `json:"items"`
	Tags      []string   `json:"tags"`
	CreatedAt Timestamp  `json:"createdAt"`
	UpdatedAt Timestamp  `json:"updatedAt"`
	LastWorn  *Timestamp `json:"lastWorn"`
}

// AddedAt is the date used for sorting and range filters.
func (o Outfit) AddedAt() time.Time {
	if o.CreatedAt.IsZero() {
		return o.UpdatedAt.Time
	}
	return o.CreatedAt.Time
}

// Clone returns a copy that shares no slices with o.
func (o Outfit) Clone() Outfit {
	o.Items = slices.Clone(o.Items)
	o.Tags = slices.Clone(o.Tags)
	if o.LastWorn != nil {
		lw := *o.LastWorn
		o.LastWorn = &lw
	}
	return o
}

// UnmarshalJSON accepts item references written as ids or as embedded item
// objects, and the dateCreated field of older browser exports.
func (o *Outfit) UnmarshalJSON(b []byte) error {
	type plain Outfit
	var aux struct {
		plain
		Items       []json.RawMessage `json:"items"`
		DateCreated *Timestamp        `json:"dateCreated"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*o = Outfit(aux.plain)
	o.Items = nil
	if aux.Items != nil {
		o.Items = make([]ID, 0, len(aux.Items))
	}
	for _, raw := range aux.Items {
		var id ID
		if err := json.Unmarshal(raw, &id); err != nil {
			var embedded struct {
				ID ID `json:"id"`
			}
			if err := json.Unmarshal(raw, &embedded); err != nil {
				return err
			}
			id = embedded.ID
		}
		if id != "" {
			o.Items = append(o.Items, id)
		}
	}
	if o.CreatedAt.IsZero() && aux.DateCreated != nil {
		o.CreatedAt = *aux.DateCreated
	}
	return nil
}
