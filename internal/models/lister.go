package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when no OpenAI key is configured
var ErrNoAPIKey = errors.New("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .persianpro.yaml")

type modelsClient interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client modelsClient
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Catalog holds model ids grouped by what PersianPro can use them for
type Catalog struct {
	Speech []string
	Chat   []string
}

// Fetch retrieves and categorizes the available models
func (l *Lister) Fetch(ctx context.Context) (Catalog, error) {
	if l.apiKey == "" {
		return Catalog{}, ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}

	var catalog Catalog
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			catalog.Speech = append(catalog.Speech, id)
		case strings.Contains(id, "audio"), strings.Contains(id, "realtime"), strings.Contains(id, "transcribe"):
			// Not usable for text translation
		case strings.Contains(id, "gpt"), strings.Contains(id, "chat"):
			catalog.Chat = append(catalog.Chat, id)
		}
	}

	sort.Strings(catalog.Speech)
	sort.Strings(catalog.Chat)
	return catalog, nil
}

// ListAvailableModels prints the categorized models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	catalog, err := l.Fetch(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available OpenAI Models:")
	fmt.Fprintln(w, "\nText-to-Speech (pronunciation) Models:")
	if len(catalog.Speech) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	}
	for _, model := range catalog.Speech {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nChat Models (for French <-> Persian translation):")
	if len(catalog.Chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, model := range catalog.Chat {
		fmt.Fprintf(w, "  %s\n", model)
	}

	return nil
}
