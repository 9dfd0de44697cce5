package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SourceEntry is the multi-line text input of the translate view. Escape
// clears it.
type SourceEntry struct {
	widget.Entry
	onEscape func()
}

// NewSourceEntry creates a new source entry
func NewSourceEntry() *SourceEntry {
	entry := &SourceEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *SourceEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *SourceEntry) SetOnEscape(f func()) {
	e.onEscape = f
}
