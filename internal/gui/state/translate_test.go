package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/translation"
)

func TestTranslate_SetSourceAndApply(t *testing.T) {
	s := NewTranslate("French", "Persian")

	req, ok := s.SetSource("chat")
	assert.True(t, ok)
	assert.Equal(t, translation.Request{Text: "chat", From: "French", To: "Persian"}, req)
	assert.True(t, s.Pending())
	assert.False(t, s.CanSave())

	assert.True(t, s.Apply(req, translation.Result{Translation: "گربه", Definition: "حیوان"}))
	assert.False(t, s.Pending())
	assert.True(t, s.CanSave())
	assert.Equal(t, "گربه", s.Result().Translation)
}

func TestTranslate_StaleResultRejected(t *testing.T) {
	s := NewTranslate("French", "Persian")

	old, _ := s.SetSource("cha")
	latest, _ := s.SetSource("chat")

	assert.False(t, s.Apply(old, translation.Result{Translation: "stale"}))
	assert.True(t, s.Pending())
	assert.Empty(t, s.Result().Translation)

	assert.True(t, s.Apply(latest, translation.Result{Translation: "گربه"}))
	assert.Equal(t, "گربه", s.Result().Translation)
}

func TestTranslate_BlankSourceClears(t *testing.T) {
	s := NewTranslate("French", "Persian")
	req, _ := s.SetSource("chat")
	s.Apply(req, translation.Result{Translation: "گربه"})

	_, ok := s.SetSource("   ")
	assert.False(t, ok)
	assert.False(t, s.Pending())
	assert.Equal(t, translation.Result{}, s.Result())
	assert.False(t, s.CanSave())
}

func TestTranslate_CanSave(t *testing.T) {
	tests := []struct {
		name   string
		result translation.Result
		want   bool
	}{
		{"translation", translation.Result{Translation: "گربه"}, true},
		{"empty translation", translation.Result{Definition: "only"}, false},
		{"failed", translation.Failed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTranslate("French", "Persian")
			req, _ := s.SetSource("chat")
			s.Apply(req, tt.result)
			assert.Equal(t, tt.want, s.CanSave())
		})
	}
}

func TestTranslate_SaveOnce(t *testing.T) {
	s := NewTranslate("French", "Persian")
	req, _ := s.SetSource("chat")
	s.Apply(req, translation.Result{Translation: "گربه", Definition: "حیوان"})

	assert.Equal(t, history.Candidate{
		SourceText:     "chat",
		TranslatedText: "گربه",
		SourceLang:     "French",
		TargetLang:     "Persian",
		Definition:     "حیوان",
	}, s.Candidate())

	s.MarkSaved()
	assert.True(t, s.Saved())
	assert.False(t, s.CanSave())

	// Editing the text makes the next translation saveable again
	req, _ = s.SetSource("chats")
	assert.False(t, s.Saved())
	s.Apply(req, translation.Result{Translation: "گربه‌ها"})
	assert.True(t, s.CanSave())
}

func TestTranslate_Swap(t *testing.T) {
	s := NewTranslate("French", "Persian")
	req, _ := s.SetSource("chat")
	s.Apply(req, translation.Result{Translation: "گربه", Definition: "حیوان"})

	req, ok := s.Swap()
	assert.True(t, ok)
	from, to := s.Languages()
	assert.Equal(t, "Persian", from)
	assert.Equal(t, "French", to)
	assert.Equal(t, "گربه", s.Source())
	assert.Equal(t, translation.Result{Translation: "chat"}, s.Result())
	assert.Equal(t, translation.Request{Text: "گربه", From: "Persian", To: "French"}, req)
	assert.True(t, s.Pending())
}

func TestTranslate_SwapFailedTranslation(t *testing.T) {
	s := NewTranslate("French", "Persian")
	req, _ := s.SetSource("chat")
	s.Apply(req, translation.Failed)

	_, ok := s.Swap()
	assert.False(t, ok)
	assert.Empty(t, s.Source())
	// Blank source clears the result
	assert.Equal(t, translation.Result{}, s.Result())
}
