package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Result is a translation with a short gloss in the target language
type Result struct {
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
}

// Failed is returned in place of an error when a translation could not be made
var Failed = Result{Translation: "Error", Definition: "Could not translate."}

// IsFailed reports whether r is the failure sentinel
func IsFailed(r Result) bool {
	return r == Failed
}

// Translator translates text between two free-form language labels
type Translator interface {
	// Translate returns the translation of text from one language to another
	Translate(ctx context.Context, text, from, to string) (Result, error)

	// Name returns the provider name
	Name() string
}

// Config selects and configures a translation provider
type Config struct {
	Provider string // "gemini", "openai" or "ollama"

	GeminiKey   string
	GeminiModel string

	OpenAIKey   string
	OpenAIModel string

	OllamaURL   string
	OllamaModel string
}

// DefaultConfig returns the Gemini configuration without an API key
func DefaultConfig() *Config {
	return &Config{
		Provider:    "gemini",
		GeminiModel: DefaultGeminiModel,
		OpenAIModel: DefaultOpenAIModel,
		OllamaURL:   DefaultOllamaURL,
		OllamaModel: DefaultOllamaModel,
	}
}

// NewTranslator creates the provider named in config
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGemini(ctx, config.GeminiKey, config.GeminiModel)
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAI(config.OpenAIKey, config.OpenAIModel), nil
	case "ollama":
		return NewOllama(config.OllamaURL, config.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

func buildPrompt(text, from, to string) string {
	return fmt.Sprintf(`Translate the following text from %s to %s. Provide the direct translation and a short definition/context in the target language.
Format the output as JSON with keys "translation" and "definition".
Text: %q`, from, to, text)
}

var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// parseResult decodes a model reply, tolerating a markdown code fence around the JSON
func parseResult(content string) (Result, error) {
	content = strings.TrimSpace(content)
	if m := codeFence.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return Result{}, fmt.Errorf("failed to decode translation response: %w", err)
	}

	result.Translation = strings.TrimSpace(result.Translation)
	result.Definition = strings.TrimSpace(result.Definition)
	if result.Translation == "" {
		return Result{}, fmt.Errorf("empty translation in response")
	}
	return result, nil
}
