package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
)

// DefaultGeminiModel is used when GeminiConfig.Model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures the Gemini classifier.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL and HTTPClient are for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini asks a Gemini model to pick category, color and tags from the
// current vocabulary.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini classifier.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

// geminiLabel is the JSON shape requested from the model.
type geminiLabel struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Color      string   `json:"color"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

func (g *Gemini) Classify(ctx context.Context, img models.ImageUpload, vocab models.Vocabulary) (models.Classification, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt(vocab)),
			genai.NewPartFromBytes(img.Data, img.MIMEType),
		}, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema(vocab),
	})
	if err != nil {
		return models.Classification{}, fmt.Errorf("%w: gemini: %v", domain.ErrClassificationFailed, err)
	}

	var label geminiLabel
	if err := json.Unmarshal([]byte(resp.Text()), &label); err != nil {
		return models.Classification{}, fmt.Errorf("%w: gemini returned malformed JSON: %v", domain.ErrClassificationFailed, err)
	}
	return toClassification(label, vocab, g.Name()), nil
}

// toClassification drops values the vocabulary does not know and restores
// their stored spelling.
func toClassification(label geminiLabel, vocab models.Vocabulary, provider string) models.Classification {
	c := models.Classification{
		Name:       strings.TrimSpace(label.Name),
		Tags:       []string{},
		Provider:   provider,
		Confidence: min(max(label.Confidence, 0), 1),
	}
	if v, ok := vocab.Canonical(models.KindCategories, label.Category); ok {
		c.Category = v
	}
	if v, ok := vocab.Canonical(models.KindColors, label.Color); ok {
		c.Color = v
	}
	for _, t := range label.Tags {
		if v, ok := vocab.Canonical(models.KindTags, t); ok && !containsFold(c.Tags, v) {
			c.Tags = append(c.Tags, v)
		}
	}
	return c
}

func prompt(vocab models.Vocabulary) string {
	var b strings.Builder
	b.WriteString("You label photos of clothing for a personal wardrobe catalog.\n")
	b.WriteString("Return a short display name, the category, the dominant color and any fitting tags.\n")
	fmt.Fprintf(&b, "Category must be one of: %s.\n", strings.Join(vocab.Categories, ", "))
	fmt.Fprintf(&b, "Color must be one of: %s.\n", strings.Join(vocab.Colors, ", "))
	fmt.Fprintf(&b, "Tags must come from: %s.\n", strings.Join(vocab.Tags, ", "))
	b.WriteString("Set confidence between 0 and 1.")
	return b.String()
}

func schema(vocab models.Vocabulary) *genai.Schema {
	enum := func(values []string) *genai.Schema {
		s := &genai.Schema{Type: genai.TypeString}
		if len(values) > 0 {
			s.Enum = values
		}
		return s
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":       {Type: genai.TypeString},
			"category":   enum(vocab.Categories),
			"color":      enum(vocab.Colors),
			"tags":       {Type: genai.TypeArray, Items: enum(vocab.Tags)},
			"confidence": {Type: genai.TypeNumber},
		},
		Required: []string{"category", "color"},
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
