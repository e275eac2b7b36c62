// Package classifier labels item photos for the catalog's auto-classification.
package classifier

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// rgb is a reference swatch for a named color.
type rgb struct{ r, g, b float64 }

// swatches covers the default vocabulary plus common additions. Names are
// matched against the vocabulary case-insensitively.
var swatches = map[string]rgb{
	"navy":     {0, 0, 128},
	"beige":    {245, 245, 220},
	"cream":    {255, 253, 208},
	"white":    {255, 255, 255},
	"black":    {0, 0, 0},
	"burgundy": {128, 0, 32},
	"camel":    {193, 154, 107},
	"grey":     {128, 128, 128},
	"gray":     {128, 128, 128},
	"brown":    {101, 67, 33},
	"khaki":    {195, 176, 145},
	"red":      {200, 30, 30},
	"green":    {34, 139, 34},
	"olive":    {107, 142, 35},
	"blue":     {30, 80, 200},
	"teal":     {0, 128, 128},
	"yellow":   {240, 220, 40},
	"orange":   {240, 140, 20},
	"pink":     {240, 160, 190},
	"purple":   {110, 40, 140},
}

// maxDistance is the distance between black and white.
var maxDistance = math.Sqrt(3 * 255 * 255)

// Palette guesses an item's color from the average pixel of its photo. It
// needs no network access and never suggests a category.
type Palette struct{}

// NewPalette returns the offline classifier.
func NewPalette() *Palette { return &Palette{} }

func (*Palette) Name() string { return "palette" }

func (*Palette) Classify(ctx context.Context, img models.ImageUpload, vocab models.Vocabulary) (models.Classification, error) {
	if err := ctx.Err(); err != nil {
		return models.Classification{}, err
	}
	decoded, format, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return models.Classification{}, fmt.Errorf("%w: palette cannot decode %s: %v", domain.ErrClassificationFailed, img.MIMEType, err)
	}

	avg := average(decoded)
	name, dist, ok := nearest(avg, vocab.Colors)
	if !ok {
		return models.Classification{}, fmt.Errorf("%w: no vocabulary color has a known swatch", domain.ErrClassificationFailed)
	}
	return models.Classification{
		Color:      name,
		Tags:       []string{},
		Provider:   "palette/" + format,
		Confidence: math.Round((1-dist/maxDistance)*100) / 100,
	}, nil
}

// average samples at most 64x64 points and skips transparent pixels.
func average(img image.Image) rgb {
	b := img.Bounds()
	stepX := max(1, b.Dx()/64)
	stepY := max(1, b.Dy()/64)

	var sum rgb
	n := 0.0
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			r, g, bl, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			sum.r += float64(r >> 8)
			sum.g += float64(g >> 8)
			sum.b += float64(bl >> 8)
			n++
		}
	}
	if n == 0 {
		return rgb{255, 255, 255}
	}
	return rgb{sum.r / n, sum.g / n, sum.b / n}
}

// nearest returns the vocabulary color closest to c, using the stored spelling.
func nearest(c rgb, colors []string) (string, float64, bool) {
	best, bestDist := "", math.Inf(1)
	for _, name := range colors {
		sw, ok := swatches[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		d := math.Sqrt((c.r-sw.r)*(c.r-sw.r) + (c.g-sw.g)*(c.g-sw.g) + (c.b-sw.b)*(c.b-sw.b))
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best, bestDist, best != ""
}
