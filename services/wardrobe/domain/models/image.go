package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ImageUpload is raw image bytes with their MIME type.
type ImageUpload struct {
	Data     []byte
	MIMEType string
}

// Classification is a suggested labelling for an item photo. Values are
// already mapped onto the vocabulary; empty fields mean "no suggestion".
type Classification struct {
	Name       string   `json:"name,omitempty"`
	Category   string   `json:"category,omitempty"`
	Color      string   `json:"color,omitempty"`
	Tags       []string `json:"tags"`
	Provider   string   `json:"provider"`
	Confidence float64  `json:"confidence,omitempty"`
}

var errNotDataURI = errors.New("not a base64 data URI")

// IsDataURI reports whether ref embeds its image bytes.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// ParseDataURI decodes a base64 data URI ("data:<mime>;base64,<payload>").
// A missing MIME type is left empty for the caller to sniff.
func ParseDataURI(ref string) (ImageUpload, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return ImageUpload{}, errNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return ImageUpload{}, errNotDataURI
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return ImageUpload{}, errNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return ImageUpload{}, err
	}
	return ImageUpload{Data: data, MIMEType: mime}, nil
}

// DataURI encodes img as a base64 data URI.
func (img ImageUpload) DataURI() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
