package translation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used for translations
const DefaultGeminiModel = "gemini-3-flash-preview"

// contentGenerator is the part of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini translates with a JSON schema constrained Gemini model
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Gemini translator for the Gemini Developer API
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{models: models, model: model}
}

// Translate implements Translator
func (g *Gemini) Translate(ctx context.Context, text, from, to string) (Result, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"translation": {Type: genai.TypeString},
				"definition":  {Type: genai.TypeString},
			},
			Required: []string{"translation", "definition"},
		},
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(text, from, to)), config)
	if err != nil {
		return Result{}, fmt.Errorf("Gemini API error: %w", err)
	}

	return parseResult(resp.Text())
}

// Name implements Translator
func (g *Gemini) Name() string {
	return "gemini"
}
