package cli

import (
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/persianpro/internal/quiz"
	"codeberg.org/snonux/persianpro/internal/speech"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	LogLevel    string
	Debug       bool
	StoragePath string
	ExportDir   string

	// Translation flags
	From        string
	To          string
	Swap        bool
	Save        bool
	Provider    string
	GeminiModel string
	OpenAIModel string
	OllamaURL   string
	OllamaModel string
	Debounce    time.Duration

	// Speech flags
	SpeechProvider    string
	SpeechModel       string
	Voice             string
	OpenAISpeechModel string
	OpenAIVoice       string
	OpenAISpeed       float64
	NoSpeechCache     bool

	// Quiz and history flags
	QuizSize    int
	Yes         bool
	Anki        bool
	AnkiAudio   bool
	AnkiReverse bool
}

// StateDir is where PersianPro keeps its database and speech cache
func StateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "persianpro")
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	home, _ := os.UserHomeDir()

	return &Flags{
		LogLevel:          "warn",
		StoragePath:       filepath.Join(StateDir(), "persianpro.db"),
		ExportDir:         filepath.Join(home, "Downloads"),
		From:              "French",
		To:                "Persian",
		Provider:          "gemini",
		GeminiModel:       translation.DefaultGeminiModel,
		OpenAIModel:       translation.DefaultOpenAIModel,
		OllamaURL:         translation.DefaultOllamaURL,
		OllamaModel:       translation.DefaultOllamaModel,
		Debounce:          translation.DefaultDebounce,
		SpeechProvider:    "gemini",
		SpeechModel:       speech.DefaultGeminiModel,
		Voice:             speech.DefaultGeminiVoice,
		OpenAISpeechModel: speech.DefaultOpenAIModel,
		OpenAIVoice:       speech.DefaultOpenAIVoice,
		OpenAISpeed:       1.0,
		QuizSize:          quiz.SessionSize,
	}
}

// Languages returns the source and target language, swapped when --swap is set
func (f *Flags) Languages() (string, string) {
	if f.Swap {
		return f.To, f.From
	}
	return f.From, f.To
}
