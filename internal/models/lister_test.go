package models

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModels struct {
	ids []string
	err error
}

func (f *fakeModels) ListModels(ctx context.Context) (openai.ModelsList, error) {
	if f.err != nil {
		return openai.ModelsList{}, f.err
	}
	var list openai.ModelsList
	for _, id := range f.ids {
		list.Models = append(list.Models, openai.Model{ID: id})
	}
	return list, nil
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestFetch_Categorizes(t *testing.T) {
	lister := &Lister{apiKey: "key", client: &fakeModels{ids: []string{
		"gpt-4o-mini", "tts-1", "whisper-1", "gpt-4o-mini-tts", "dall-e-3",
		"gpt-4o-audio-preview", "chatgpt-4o-latest", "gpt-4.1",
	}}}

	catalog, err := lister.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o-mini-tts", "tts-1"}, catalog.Speech)
	assert.Equal(t, []string{"chatgpt-4o-latest", "gpt-4.1", "gpt-4o-mini"}, catalog.Chat)
}

func TestListAvailableModels_Output(t *testing.T) {
	lister := &Lister{apiKey: "key", client: &fakeModels{ids: []string{"gpt-4o-mini"}}}

	var out bytes.Buffer
	require.NoError(t, lister.ListAvailableModels(context.Background(), &out))
	assert.Contains(t, out.String(), "No TTS models found")
	assert.Contains(t, out.String(), "  gpt-4o-mini\n")
}

func TestListAvailableModels_ClientError(t *testing.T) {
	lister := &Lister{apiKey: "key", client: &fakeModels{err: errors.New("unauthorized")}}

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list models")
}
