package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/persianpro/internal"
	"codeberg.org/snonux/persianpro/internal/speech"
)

// PronounceButton speaks a piece of text. Each control key has its own
// pronouncer, so presses while it is busy are ignored without blocking
// other buttons. The pronouncer outlives view rebuilds.
type PronounceButton struct {
	*ttwidget.Button

	a          *Application
	key        string
	pronouncer *speech.Pronouncer
	text       string
}

func newPronounceButton(a *Application, key string) *PronounceButton {
	b := &PronounceButton{a: a, key: key}
	b.Button = ttwidget.NewButtonWithIcon("", theme.VolumeUpIcon(), b.onTapped)
	b.Importance = widget.LowImportance

	b.pronouncer = a.pronouncers.Attach(key, func() {
		b.SetSpeech(b.text)
	})
	b.SetSpeech("")
	return b
}

// SetSpeech sets the text spoken on the next press
func (b *PronounceButton) SetSpeech(text string) {
	b.text = text
	if b.pronouncer == nil || strings.TrimSpace(text) == "" || b.pronouncer.Busy() {
		b.Disable()
		return
	}
	b.Enable()
}

func (b *PronounceButton) onTapped() {
	text := b.text
	if b.pronouncer == nil || strings.TrimSpace(text) == "" {
		return
	}

	b.Disable()
	go func() {
		b.pronouncer.Pronounce(b.a.ctx, text)
		fyne.Do(func() {
			b.a.pronouncers.Refresh(b.key)
		})
	}()
}

func (b *PronounceButton) setupTooltip() {
	b.SetToolTip(b.a.loc.T("pronounce"))
}

// setAligned sets label text, aligned to the trailing edge for right to
// left languages
func setAligned(label *widget.Label, text, lang string) {
	if internal.IsRTL(lang) || (lang == "" && internal.IsRTLText(text)) {
		label.Alignment = fyne.TextAlignTrailing
	} else {
		label.Alignment = fyne.TextAlignLeading
	}
	label.SetText(text)
}

// newWrappedLabel creates a word wrapping label
func newWrappedLabel() *widget.Label {
	l := widget.NewLabel("")
	l.Wrapping = fyne.TextWrapWord
	return l
}

// newHeadingLabel creates a bold label using the heading text size
func newHeadingLabel() *widget.Label {
	l := newWrappedLabel()
	l.TextStyle = fyne.TextStyle{Bold: true}
	l.SizeName = theme.SizeNameHeadingText
	return l
}
