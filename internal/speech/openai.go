package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultOpenAIModel is the OpenAI text-to-speech model
	DefaultOpenAIModel = "gpt-4o-mini-tts"
	// DefaultOpenAIVoice is the OpenAI voice
	DefaultOpenAIVoice = "alloy"
)

type speechCreator interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// OpenAI synthesizes speech with the OpenAI TTS API
type OpenAI struct {
	client speechCreator
	model  string
	voice  string
	speed  float64
}

// NewOpenAI creates a new OpenAI TTS provider
func NewOpenAI(apiKey, model, voice string, speed float64) *OpenAI {
	return newOpenAI(openai.NewClient(apiKey), model, voice, speed)
}

func newOpenAI(client speechCreator, model, voice string, speed float64) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if voice == "" {
		voice = DefaultOpenAIVoice
	}
	if speed == 0 {
		speed = 1.0
	}
	return &OpenAI{client: client, model: model, voice: voice, speed: speed}
}

// Synthesize implements Provider
func (p *OpenAI) Synthesize(ctx context.Context, text string) (*Audio, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.model),
		Input:          text,
		Voice:          openai.SpeechVoice(p.voice),
		Speed:          p.speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
	if p.model == "gpt-4o-mini-tts" {
		req.Instructions = "Speak slowly and clearly for language learners."
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-tts-model tts-1-hd instead", err, p.model)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return &Audio{Data: data, Format: "mp3"}, nil
}

// Name implements Provider
func (p *OpenAI) Name() string {
	return "openai"
}
