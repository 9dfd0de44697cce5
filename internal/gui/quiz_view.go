package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/persianpro/internal/quiz"
)

// quizView runs multiple-choice sessions over the saved entries
type quizView struct {
	a *Application

	// Idle
	idle        *fyne.Container
	startButton *widget.Button
	hint        *widget.Label

	// Active
	active     *fyne.Container
	progress   *widget.Label
	word       *widget.Label
	options    *fyne.Container
	feedback   *widget.Label
	nextButton *widget.Button
	speak      *PronounceButton
	buttons    []*widget.Button
	chosen     string

	// Finished
	finished    *fyne.Container
	score       *widget.Label
	retryButton *widget.Button
}

func newQuizView(a *Application) *quizView {
	v := &quizView{a: a}

	title := newHeadingLabel()
	title.Alignment = fyne.TextAlignCenter
	title.SetText(a.loc.T("quiz"))
	v.startButton = widget.NewButtonWithIcon(a.loc.T("startQuiz"), theme.MediaPlayIcon(), v.onStart)
	v.startButton.Importance = widget.HighImportance
	v.hint = widget.NewLabel(a.loc.Tf("needMoreEntries", map[string]interface{}{"Min": quiz.MinEntries}))
	v.hint.Alignment = fyne.TextAlignCenter
	v.hint.Wrapping = fyne.TextWrapWord
	v.idle = container.NewVBox(title, v.hint, v.startButton)

	v.progress = widget.NewLabel("")
	v.progress.Importance = widget.LowImportance
	v.word = newHeadingLabel()
	v.word.Alignment = fyne.TextAlignCenter
	v.options = container.NewVBox()
	v.feedback = widget.NewLabel("")
	v.feedback.Alignment = fyne.TextAlignCenter
	v.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), v.onNext)
	v.nextButton.Importance = widget.HighImportance
	v.speak = newPronounceButton(a, "quiz")
	v.active = container.NewVBox(
		container.NewBorder(nil, nil, v.progress, v.speak.Button),
		v.word,
		v.options,
		v.feedback,
		v.nextButton,
	)

	v.score = newHeadingLabel()
	v.score.Alignment = fyne.TextAlignCenter
	v.retryButton = widget.NewButtonWithIcon(a.loc.T("tryAgain"), theme.ViewRefreshIcon(), v.onRetry)
	v.finished = container.NewVBox(v.score, v.retryButton)

	return v
}

func (v *quizView) content() fyne.CanvasObject {
	return container.NewPadded(container.NewStack(
		container.NewCenter(v.idle),
		v.active,
		container.NewCenter(v.finished),
	))
}

func (v *quizView) onStart() {
	err := v.a.session.Start(v.a.config.History.List(), v.a.rng, v.a.config.QuizSize)
	if errors.Is(err, quiz.ErrNotEnoughEntries) {
		v.render()
		return
	}
	v.a.logger.Debug("quiz started")
	v.render()
}

// onOptionKey answers with the option at index i, if there is one
func (v *quizView) onOptionKey(i int) {
	if i < 0 || i >= len(v.buttons) || v.a.session.State() != quiz.Active {
		return
	}
	v.onAnswer(v.buttons[i].Text)
}

func (v *quizView) onAnswer(option string) {
	if _, err := v.a.session.Answer(option); err != nil {
		// Already answered or not running
		return
	}
	v.chosen = option
	v.render()
}

func (v *quizView) onNext() {
	if v.a.session.State() != quiz.Active || !v.a.session.Answered() {
		return
	}
	v.a.session.Next()
	v.chosen = ""
	v.buttons = nil
	v.render()
}

func (v *quizView) onRetry() {
	v.a.session.Reset()
	v.chosen = ""
	v.buttons = nil
	v.render()
}

func (v *quizView) render() {
	s := v.a.session

	v.idle.Hide()
	v.active.Hide()
	v.finished.Hide()

	switch s.State() {
	case quiz.Idle:
		enough := len(v.a.config.History.List()) >= quiz.MinEntries
		if enough {
			v.hint.Hide()
			v.startButton.Enable()
		} else {
			v.hint.Show()
			v.startButton.Disable()
		}
		v.idle.Show()
	case quiz.Active:
		v.renderQuestion()
		v.active.Show()
	case quiz.Finished:
		v.score.SetText(v.a.loc.Tf("score", map[string]interface{}{"Score": s.Score(), "Total": s.Len()}))
		v.finished.Show()
	}
}

func (v *quizView) renderQuestion() {
	s := v.a.session
	q, ok := s.Current()
	if !ok {
		return
	}

	v.progress.SetText(fmt.Sprintf("%d / %d", s.Position()+1, s.Len()))
	v.word.SetText(q.Word)
	v.speak.SetSpeech(q.Word)

	if v.buttons == nil {
		v.options.RemoveAll()
		for _, opt := range q.Options {
			opt := opt
			b := widget.NewButton(opt, func() { v.onAnswer(opt) })
			v.buttons = append(v.buttons, b)
			v.options.Add(b)
		}
	}

	answered := s.Answered()
	for _, b := range v.buttons {
		switch {
		case !answered:
			b.Importance = widget.MediumImportance
			b.Enable()
		case b.Text == q.CorrectAnswer:
			b.Importance = widget.SuccessImportance
			b.Disable()
		case b.Text == v.chosen:
			b.Importance = widget.DangerImportance
			b.Disable()
		default:
			b.Importance = widget.LowImportance
			b.Disable()
		}
		b.Refresh()
	}

	if !answered {
		v.feedback.SetText("")
		v.nextButton.Hide()
		return
	}

	if v.chosen == q.CorrectAnswer {
		v.feedback.SetText(v.a.loc.T("correct"))
		v.feedback.Importance = widget.SuccessImportance
	} else {
		v.feedback.SetText(v.a.loc.Tf("wrong", map[string]interface{}{"Answer": q.CorrectAnswer}))
		v.feedback.Importance = widget.DangerImportance
	}
	v.feedback.Refresh()

	if s.Position()+1 < s.Len() {
		v.nextButton.SetText(v.a.loc.T("nextQuestion"))
	} else {
		v.nextButton.SetText(v.a.loc.T("finishQuiz"))
	}
	v.nextButton.Show()
}
