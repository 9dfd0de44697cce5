package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultOllamaURL is the address of a local Ollama server
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultOllamaModel is used when no model is configured
	DefaultOllamaModel = "llama3.1"
)

// Ollama translates with a model served by a local Ollama instance
type Ollama struct {
	baseURL string
	model   string
	http    *resty.Client
}

// NewOllama creates a translator talking to the Ollama chat API at baseURL
func NewOllama(baseURL, model string) *Ollama {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	return &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    resty.New().SetTimeout(60 * time.Second),
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Format   string          `json:"format"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

// Translate implements Translator
func (o *Ollama) Translate(ctx context.Context, text, from, to string) (Result, error) {
	body := ollamaChatRequest{
		Model: o.model,
		Messages: []ollamaMessage{
			{Role: "user", Content: buildPrompt(text, from, to)},
		},
		Format: "json",
		Stream: false,
	}

	var resp ollamaChatResponse
	r, err := o.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(o.baseURL + "/api/chat")
	if err != nil {
		return Result{}, fmt.Errorf("ollama request failed: %w", err)
	}
	if r.IsError() {
		return Result{}, fmt.Errorf("ollama translate: %s; body: %s", r.Status(), r.String())
	}

	return parseResult(resp.Message.Content)
}

// Name implements Translator
func (o *Ollama) Name() string {
	return "ollama"
}
