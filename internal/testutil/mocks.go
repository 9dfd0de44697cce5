package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/persianpro/internal/speech"
	"codeberg.org/snonux/persianpro/internal/storage"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// FailingKV is an in-memory KV whose reads or writes can be made to fail
type FailingKV struct {
	GetErr error
	SetErr error

	mem *storage.Memory
}

// Get returns GetErr when set
func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	return f.memory().Get(ctx, key)
}

// Set returns SetErr when set
func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	return f.memory().Set(ctx, key, value)
}

func (f *FailingKV) memory() *storage.Memory {
	if f.mem == nil {
		f.mem = storage.NewMemory()
	}
	return f.mem
}

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]translation.Result
	Errors       map[string]error

	mu    sync.Mutex
	Calls []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (translation.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang))
	m.mu.Unlock()

	if err, ok := m.Errors[text]; ok {
		return translation.Result{}, err
	}

	if result, ok := m.Translations[text]; ok {
		return result, nil
	}

	// Default mock translation
	return translation.Result{
		Translation: fmt.Sprintf("mock translation of %s", text),
		Definition:  fmt.Sprintf("mock definition in %s", toLang),
	}, nil
}

// Name returns the provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

// CallCount returns the number of Translate calls
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSpeechProvider mocks a text-to-speech provider
type MockSpeechProvider struct {
	Err error

	mu    sync.Mutex
	Calls []string
}

// Synthesize returns a small fake WAV clip
func (m *MockSpeechProvider) Synthesize(ctx context.Context, text string) (*speech.Audio, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return &speech.Audio{Data: speech.PCMToWAV([]byte(text), 24000, 1, 16), Format: "wav"}, nil
}

// Name returns the provider name
func (m *MockSpeechProvider) Name() string {
	return "mock"
}

// MockPlayer records played clips instead of playing them
type MockPlayer struct {
	Err error

	mu     sync.Mutex
	Played []*speech.Audio
}

// Play records audio
func (m *MockPlayer) Play(ctx context.Context, audio *speech.Audio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Played = append(m.Played, audio)
	return m.Err
}

// PlayCount returns the number of played clips
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Played)
}
