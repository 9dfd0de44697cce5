package speech

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	// DefaultGeminiModel is the Gemini text-to-speech model
	DefaultGeminiModel = "gemini-2.5-flash-preview-tts"
	// DefaultGeminiVoice is the prebuilt Gemini voice
	DefaultGeminiVoice = "Kore"

	// Gemini returns raw 16-bit little endian mono PCM at 24kHz
	geminiSampleRate = 24000
	geminiChannels   = 1
	geminiBitDepth   = 16
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini synthesizes speech with a Gemini TTS model
type Gemini struct {
	models contentGenerator
	model  string
	voice  string
}

// NewGemini creates a Gemini speech provider for the Gemini Developer API
func NewGemini(ctx context.Context, apiKey, model, voice string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGemini(client.Models, model, voice), nil
}

func newGemini(models contentGenerator, model, voice string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	if voice == "" {
		voice = DefaultGeminiVoice
	}
	return &Gemini{models: models, model: model, voice: voice}
}

// Synthesize implements Provider. The PCM samples are wrapped in a WAV container.
func (g *Gemini) Synthesize(ctx context.Context, text string) (*Audio, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text("Speak this clearly: "+text), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	pcm := inlineAudio(resp)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio data received from Gemini")
	}

	return &Audio{Data: PCMToWAV(pcm, geminiSampleRate, geminiChannels, geminiBitDepth), Format: "wav"}, nil
}

// Name implements Provider
func (g *Gemini) Name() string {
	return "gemini"
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
