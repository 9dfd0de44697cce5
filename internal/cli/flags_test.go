package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()
	home, _ := os.UserHomeDir()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"From", flags.From, "French"},
		{"To", flags.To, "Persian"},
		{"Provider", flags.Provider, "gemini"},
		{"GeminiModel", flags.GeminiModel, "gemini-3-flash-preview"},
		{"SpeechProvider", flags.SpeechProvider, "gemini"},
		{"SpeechModel", flags.SpeechModel, "gemini-2.5-flash-preview-tts"},
		{"Voice", flags.Voice, "Kore"},
		{"Debounce", flags.Debounce, 800 * time.Millisecond},
		{"QuizSize", flags.QuizSize, 10},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
		{"StoragePath", flags.StoragePath, filepath.Join(home, ".local", "state", "persianpro", "persianpro.db")},
		{"ExportDir", flags.ExportDir, filepath.Join(home, "Downloads")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Debug", flags.Debug},
		{"Swap", flags.Swap},
		{"Save", flags.Save},
		{"NoSpeechCache", flags.NoSpeechCache},
		{"Yes", flags.Yes},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	if flags.CfgFile != "" {
		t.Errorf("CfgFile = %q, want empty string", flags.CfgFile)
	}
}

func TestFlagsLanguages(t *testing.T) {
	flags := NewFlags()

	from, to := flags.Languages()
	if from != "French" || to != "Persian" {
		t.Errorf("Languages() = %s, %s, want French, Persian", from, to)
	}

	flags.Swap = true
	from, to = flags.Languages()
	if from != "Persian" || to != "French" {
		t.Errorf("Languages() with swap = %s, %s, want Persian, French", from, to)
	}
}
