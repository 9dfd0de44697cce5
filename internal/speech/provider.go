package speech

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Audio is a synthesized clip ready for playback
type Audio struct {
	Data   []byte
	Format string // file extension: "wav" or "mp3"
}

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize returns encoded audio for text
	Synthesize(ctx context.Context, text string) (*Audio, error)

	// Name returns the provider name
	Name() string
}

// Config holds the configuration for speech providers
type Config struct {
	Provider string // "gemini" or "openai"
	CacheDir string // empty disables the on-disk cache
	Logger   *zap.Logger

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string // prebuilt voice name, e.g. "Kore"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"
	OpenAIVoice string
	OpenAISpeed float64
}

// DefaultConfig returns the Gemini configuration without an API key
func DefaultConfig() *Config {
	return &Config{
		Provider:    "gemini",
		GeminiModel: DefaultGeminiModel,
		GeminiVoice: DefaultGeminiVoice,
		OpenAIModel: DefaultOpenAIModel,
		OpenAIVoice: DefaultOpenAIVoice,
		OpenAISpeed: 1.0,
	}
}

// NewProvider creates the speech provider named in config, wrapped in a
// disk cache when config.CacheDir is set
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var provider Provider
	switch config.Provider {
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		p, err := NewGemini(ctx, config.GeminiKey, config.GeminiModel, config.GeminiVoice)
		if err != nil {
			return nil, err
		}
		provider = p
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		provider = NewOpenAI(config.OpenAIKey, config.OpenAIModel, config.OpenAIVoice, config.OpenAISpeed)
	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}

	if config.CacheDir != "" {
		return NewCached(provider, config.CacheDir, config.voiceKey(), config.Logger)
	}
	return provider, nil
}

// voiceKey identifies the voice settings that change the produced audio
func (c *Config) voiceKey() string {
	switch c.Provider {
	case "gemini":
		return fmt.Sprintf("gemini|%s|%s", c.GeminiModel, c.GeminiVoice)
	default:
		return fmt.Sprintf("openai|%s|%s|%.2f", c.OpenAIModel, c.OpenAIVoice, c.OpenAISpeed)
	}
}
