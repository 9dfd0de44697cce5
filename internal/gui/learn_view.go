package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/persianpro/internal/flashcard"
)

// learnView shows the saved entries as flashcards
type learnView struct {
	a    *Application
	deck *flashcard.Navigator

	empty      *widget.Label
	card       *fyne.Container
	lang       *widget.Label
	word       *widget.Label
	definition *widget.Label
	position   *widget.Label

	prevButton   *ttwidget.Button
	nextButton   *ttwidget.Button
	revealButton *ttwidget.Button
	speak        *PronounceButton
}

func newLearnView(a *Application) *learnView {
	v := &learnView{a: a}

	v.empty = widget.NewLabel(a.loc.T("noHistory"))
	v.empty.Alignment = fyne.TextAlignCenter

	v.lang = widget.NewLabel("")
	v.lang.Alignment = fyne.TextAlignCenter
	v.lang.Importance = widget.LowImportance
	v.word = newHeadingLabel()
	v.word.Alignment = fyne.TextAlignCenter
	v.definition = newWrappedLabel()
	v.definition.TextStyle = fyne.TextStyle{Italic: true}
	v.position = widget.NewLabel("")
	v.position.Alignment = fyne.TextAlignCenter

	v.prevButton = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), v.onPrevious)
	v.nextButton = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), v.onNext)
	v.revealButton = ttwidget.NewButtonWithIcon(a.loc.T("reveal"), theme.VisibilityIcon(), v.onReveal)
	v.speak = newPronounceButton(a, "learn")

	v.card = container.NewVBox(
		v.lang,
		v.word,
		v.definition,
		container.NewCenter(v.speak.Button),
		layout.NewSpacer(),
		container.NewHBox(layout.NewSpacer(), v.prevButton, v.position, v.nextButton, layout.NewSpacer()),
		container.NewCenter(v.revealButton),
	)

	return v
}

func (v *learnView) content() fyne.CanvasObject {
	return container.NewStack(container.NewCenter(v.empty), container.NewPadded(v.card))
}

func (v *learnView) setupTooltips() {
	v.prevButton.SetToolTip(v.a.loc.T("previous") + " (←)")
	v.nextButton.SetToolTip(v.a.loc.T("next") + " (→)")
	v.revealButton.SetToolTip(v.a.loc.T("reveal") + " (space)")
	v.speak.setupTooltip()
}

// reload builds a new deck from the current history
func (v *learnView) reload() {
	deck, err := flashcard.NewNavigator(v.a.config.History.List())
	if err != nil {
		v.deck = nil
	} else {
		// Keep the position when the deck is still large enough
		if v.deck != nil && v.deck.Index() < deck.Len() {
			for deck.Index() != v.deck.Index() {
				deck.Next()
			}
		}
		v.deck = deck
	}
	v.render()
}

func (v *learnView) onPrevious() {
	if v.deck == nil {
		return
	}
	v.deck.Previous()
	v.render()
}

func (v *learnView) onNext() {
	if v.deck == nil {
		return
	}
	v.deck.Next()
	v.render()
}

func (v *learnView) onReveal() {
	if v.deck == nil {
		return
	}
	v.deck.Reveal()
	v.render()
}

func (v *learnView) render() {
	if v.deck == nil {
		v.empty.Show()
		v.card.Hide()
		return
	}
	v.empty.Hide()
	v.card.Show()

	entry := v.deck.Current()
	v.position.SetText(v.deck.Position())

	if v.deck.Revealed() {
		v.lang.SetText(entry.TargetLang)
		v.word.SetText(entry.TranslatedText)
		setAligned(v.definition, entry.Definition, entry.TargetLang)
		v.definition.Show()
		v.speak.SetSpeech(entry.TranslatedText)
		v.revealButton.SetText(v.a.loc.T("back"))
	} else {
		v.lang.SetText(entry.SourceLang)
		v.word.SetText(entry.SourceText)
		v.definition.Hide()
		v.speak.SetSpeech(entry.SourceText)
		v.revealButton.SetText(v.a.loc.T("reveal"))
	}
}
