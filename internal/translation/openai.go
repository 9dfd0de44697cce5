package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used for translations
const DefaultOpenAIModel = openai.GPT4oMini

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI translates with an OpenAI chat model in JSON mode
type OpenAI struct {
	client chatCompleter
	model  string
}

// NewOpenAI creates an OpenAI translator. An empty model means DefaultOpenAIModel.
func NewOpenAI(apiKey, model string) *OpenAI {
	return newOpenAI(openai.NewClient(apiKey), model)
}

func newOpenAI(client chatCompleter, model string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{client: client, model: model}
}

// Translate implements Translator
func (o *OpenAI) Translate(ctx context.Context, text, from, to string) (Result, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, from, to),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   300,
		Temperature: 0.3,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("no translation returned")
	}

	return parseResult(resp.Choices[0].Message.Content)
}

// Name implements Translator
func (o *OpenAI) Name() string {
	return "openai"
}
