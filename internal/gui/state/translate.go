// Package state holds the toolkit independent state behind the GUI views.
// It is not safe for concurrent use: the GUI only touches it from the UI
// goroutine.
package state

import (
	"strings"

	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// Translate is the state of the translate view
type Translate struct {
	from    string
	to      string
	source  string
	result  translation.Result
	pending bool
	saved   bool
}

// NewTranslate returns an empty view translating from -> to
func NewTranslate(from, to string) *Translate {
	return &Translate{from: from, to: to}
}

// Languages returns the current source and target language
func (t *Translate) Languages() (string, string) {
	return t.from, t.to
}

// Source returns the text being translated
func (t *Translate) Source() string {
	return t.source
}

// Result returns the translation currently shown
func (t *Translate) Result() translation.Result {
	return t.result
}

// Pending reports whether a translation for the current text is outstanding
func (t *Translate) Pending() bool {
	return t.pending
}

// Saved reports whether the shown translation has been saved
func (t *Translate) Saved() bool {
	return t.saved
}

// SetSource records edited text and returns the request to translate it.
// ok is false for blank text, which clears the result immediately.
func (t *Translate) SetSource(text string) (req translation.Request, ok bool) {
	t.source = text
	t.saved = false

	if strings.TrimSpace(text) == "" {
		t.result = translation.Result{}
		t.pending = false
		return translation.Request{}, false
	}

	t.pending = true
	return t.request(), true
}

// Apply shows res if it answers the current text and direction. Results for
// older requests are rejected.
func (t *Translate) Apply(req translation.Request, res translation.Result) bool {
	if req != t.request() {
		return false
	}

	t.result = res
	t.pending = false
	t.saved = false
	return true
}

// Swap exchanges the languages together with source text and translation.
// The returned request retranslates the new source text.
func (t *Translate) Swap() (req translation.Request, ok bool) {
	t.from, t.to = t.to, t.from

	newSource := t.result.Translation
	if translation.IsFailed(t.result) {
		newSource = ""
	}
	t.result = translation.Result{Translation: t.source}

	return t.SetSource(newSource)
}

// CanSave reports whether the save button is enabled: a non-empty, non-failed
// translation of the current text that has not been saved yet
func (t *Translate) CanSave() bool {
	return !t.pending &&
		!t.saved &&
		strings.TrimSpace(t.source) != "" &&
		t.result.Translation != "" &&
		!translation.IsFailed(t.result)
}

// Candidate returns the shown translation for the history
func (t *Translate) Candidate() history.Candidate {
	return history.Candidate{
		SourceText:     t.source,
		TranslatedText: t.result.Translation,
		SourceLang:     t.from,
		TargetLang:     t.to,
		Definition:     t.result.Definition,
	}
}

// MarkSaved disables saving until the text or translation changes
func (t *Translate) MarkSaved() {
	t.saved = true
}

func (t *Translate) request() translation.Request {
	return translation.Request{Text: t.source, From: t.from, To: t.to}
}
