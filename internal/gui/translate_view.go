package gui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// translateView shows the source text input and its live translation
type translateView struct {
	a *Application

	sourceLang      *widget.Label
	targetLang      *widget.Label
	source          *SourceEntry
	translation     *widget.Label
	definitionTitle *widget.Label
	definition      *widget.Label
	progress        *widget.ProgressBarInfinite

	swapButton  *ttwidget.Button
	saveButton  *ttwidget.Button
	sourceSpeak *PronounceButton
	targetSpeak *PronounceButton

	// Set while the entry text is changed programmatically
	updating bool
}

func newTranslateView(a *Application) *translateView {
	v := &translateView{a: a}

	v.sourceLang = widget.NewLabel("")
	v.sourceLang.TextStyle = fyne.TextStyle{Bold: true}
	v.targetLang = widget.NewLabel("")
	v.targetLang.TextStyle = fyne.TextStyle{Bold: true}

	v.source = NewSourceEntry()
	v.source.SetPlaceHolder(a.loc.T("sourcePlaceholder"))
	v.source.SetText(a.translateState.Source())
	v.source.OnChanged = v.onSourceChanged
	v.source.SetOnEscape(func() {
		v.source.SetText("")
	})

	v.translation = newHeadingLabel()
	v.definitionTitle = widget.NewLabel(a.loc.T("definition"))
	v.definitionTitle.TextStyle = fyne.TextStyle{Italic: true}
	v.definition = newWrappedLabel()
	v.definition.TextStyle = fyne.TextStyle{Italic: true}

	v.progress = widget.NewProgressBarInfinite()
	v.progress.Hide()

	v.swapButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), v.onSwap)
	v.saveButton = ttwidget.NewButtonWithIcon(a.loc.T("save"), theme.DocumentSaveIcon(), v.onSave)
	v.saveButton.Importance = widget.HighImportance

	v.sourceSpeak = newPronounceButton(a, "translate.source")
	v.targetSpeak = newPronounceButton(a, "translate.target")

	return v
}

func (v *translateView) content() fyne.CanvasObject {
	sourceBox := container.NewBorder(
		container.NewHBox(v.sourceLang, layout.NewSpacer(), v.sourceSpeak.Button),
		nil, nil, nil,
		v.source,
	)

	targetBox := container.NewBorder(
		container.NewHBox(v.targetLang, layout.NewSpacer(), v.targetSpeak.Button),
		nil, nil, nil,
		container.NewVScroll(container.NewVBox(
			v.progress,
			v.translation,
			v.definitionTitle,
			v.definition,
		)),
	)

	boxes := container.NewGridWithColumns(2, sourceBox, targetBox)

	actions := container.NewHBox(layout.NewSpacer(), v.swapButton, v.saveButton, layout.NewSpacer())

	return container.NewBorder(nil, actions, nil, nil, boxes)
}

func (v *translateView) setupTooltips() {
	v.swapButton.SetToolTip(v.a.loc.T("swap"))
	v.saveButton.SetToolTip(v.a.loc.T("save"))
	v.sourceSpeak.setupTooltip()
	v.targetSpeak.setupTooltip()
}

func (v *translateView) onSourceChanged(text string) {
	if v.updating {
		return
	}

	req, ok := v.a.translateState.SetSource(text)
	if ok {
		v.a.live.Update(req)
	} else {
		v.a.live.Cancel()
	}
	v.render()
}

func (v *translateView) onSwap() {
	req, ok := v.a.translateState.Swap()

	v.updating = true
	v.source.SetText(v.a.translateState.Source())
	v.updating = false

	if ok {
		v.a.live.Update(req)
	} else {
		v.a.live.Cancel()
	}
	v.render()
}

func (v *translateView) onSave() {
	st := v.a.translateState
	if !st.CanSave() {
		return
	}

	_, err := v.a.config.History.Add(v.a.ctx, st.Candidate())
	if errors.Is(err, history.ErrInvalidCandidate) {
		v.a.showError(err)
		return
	}

	// A storage failure still keeps the entry for this session
	st.MarkSaved()
	if err != nil {
		v.a.showStorageError(err)
	}
	v.render()
}

// render copies the translate state into the widgets
func (v *translateView) render() {
	st := v.a.translateState
	from, to := st.Languages()
	result := st.Result()

	v.sourceLang.SetText(from)
	v.targetLang.SetText(to)

	if st.Pending() {
		v.progress.Show()
		v.progress.Start()
	} else {
		v.progress.Stop()
		v.progress.Hide()
	}

	text := result.Translation
	if text == "" && !st.Pending() {
		text = v.a.loc.T("translationPlaceholder")
	}
	setAligned(v.translation, text, to)

	if result.Definition != "" {
		v.definitionTitle.Show()
		setAligned(v.definition, result.Definition, to)
		v.definition.Show()
	} else {
		v.definitionTitle.Hide()
		v.definition.Hide()
	}

	if st.Saved() {
		v.saveButton.SetText(v.a.loc.T("saved"))
		v.saveButton.SetIcon(theme.ConfirmIcon())
	} else {
		v.saveButton.SetText(v.a.loc.T("save"))
		v.saveButton.SetIcon(theme.DocumentSaveIcon())
	}
	if st.CanSave() {
		v.saveButton.Enable()
	} else {
		v.saveButton.Disable()
	}

	v.sourceSpeak.SetSpeech(st.Source())
	if translation.IsFailed(result) {
		v.targetSpeak.SetSpeech("")
	} else {
		v.targetSpeak.SetSpeech(result.Translation)
	}
}
