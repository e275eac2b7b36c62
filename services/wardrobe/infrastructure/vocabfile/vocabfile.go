// Package vocabfile reads the default vocabulary from a YAML seed file:
//
//	categories: [shirt, trousers, dress]
//	colors: [navy, beige]
//	tags: [casual, work]
//
// Lists left out of the file keep the built-in defaults.
package vocabfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// Load reads path. An empty path returns the built-in defaults.
func Load(path string) (models.Vocabulary, error) {
	if path == "" {
		return models.DefaultVocabulary(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return models.Vocabulary{}, fmt.Errorf("read vocabulary file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML seed document.
func Parse(b []byte) (models.Vocabulary, error) {
	var doc struct {
		Categories *[]string `yaml:"categories"`
		Colors     *[]string `yaml:"colors"`
		Tags       *[]string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return models.Vocabulary{}, fmt.Errorf("parse vocabulary file: %w", err)
	}

	v := models.DefaultVocabulary()
	if doc.Categories != nil {
		v.Categories = *doc.Categories
	}
	if doc.Colors != nil {
		v.Colors = *doc.Colors
	}
	if doc.Tags != nil {
		v.Tags = *doc.Tags
	}
	return v.Normalize(), nil
}

// Write renders v as a seed file.
func Write(path string, v models.Vocabulary) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write vocabulary file: %w", err)
	}
	return nil
}
