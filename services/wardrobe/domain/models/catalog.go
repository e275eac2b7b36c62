package models

// Document is the persisted shape of the whole catalog: one JSON blob.
type Document struct {
	Items      []Item   `json:"items"`
	Outfits    []Outfit `json:"outfits"`
	Colors     []string `json:"colors"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// Vocabulary returns the value lists stored in the document.
func (d Document) Vocabulary() Vocabulary {
	return Vocabulary{Categories: d.Categories, Colors: d.Colors, Tags: d.Tags}
}
