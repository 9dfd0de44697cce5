package gui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal"
	"codeberg.org/snonux/persianpro/internal/gui/state"
	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/locale"
	"codeberg.org/snonux/persianpro/internal/quiz"
	"codeberg.org/snonux/persianpro/internal/settings"
	"codeberg.org/snonux/persianpro/internal/speech"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// Tab indexes in the order they are shown
const (
	tabTranslate = iota
	tabLearn
	tabQuiz
	tabHistory
)

// Config holds GUI application configuration
type Config struct {
	History    *history.Store
	Settings   *settings.Store
	Translator *translation.Service
	Speech     *speech.Service // nil disables the pronounce buttons
	Player     speech.Player
	Bundle     *i18n.Bundle
	Logger     *zap.Logger

	From      string
	To        string
	Debounce  time.Duration
	QuizSize  int
	ExportDir string
}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	config *Config
	logger *zap.Logger
	loc    *locale.Localizer

	// Header and status
	tabs        *container.AppTabs
	themeButton *ttwidget.Button
	langButton  *ttwidget.Button
	statusLabel *widget.Label

	// Views are rebuilt when the UI language changes, their state is kept here
	translate *translateView
	learn     *learnView
	quiz      *quizView
	history   *historyView

	translateState *state.Translate
	session        *quiz.Session
	rng            quiz.Rand
	live           *translation.Live
	pronouncers    *state.Pronouncers

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new GUI application
func New(config *Config) *Application {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Player == nil {
		config.Player = speech.NewExecPlayer()
	}

	ctx, cancel := context.WithCancel(context.Background())

	fyneApp := app.NewWithID("org.codeberg.snonux.persianpro")
	fyneApp.SetIcon(GetAppIcon())

	a := &Application{
		app:            fyneApp,
		config:         config,
		logger:         logger,
		translateState: state.NewTranslate(config.From, config.To),
		session:        quiz.NewSession(),
		rng:            quiz.NewRand(),
		ctx:            ctx,
		cancel:         cancel,
	}

	var newPronouncer func() *speech.Pronouncer
	if config.Speech != nil {
		newPronouncer = func() *speech.Pronouncer {
			return speech.NewPronouncer(config.Speech, config.Player, logger)
		}
	}
	a.pronouncers = state.NewPronouncers(newPronouncer)

	a.live = translation.NewLive(config.Translator, config.Debounce, a.onLiveResult, logger)

	prefs := config.Settings.Get()
	a.loc = locale.New(config.Bundle, prefs.Language)
	a.applyTheme(prefs.DarkMode)

	a.window = fyneApp.NewWindow(fmt.Sprintf("PersianPro v%s", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 700))
	a.window.SetOnClosed(func() {
		a.live.Stop()
		a.cancel()
	})

	a.setupUI()
	a.setupKeyboardShortcuts()

	return a
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// setupUI builds the window content in the current UI language
func (a *Application) setupUI() {
	selected := tabTranslate
	if a.tabs != nil {
		selected = a.tabs.SelectedIndex()
	}

	previous := a.quiz

	a.translate = newTranslateView(a)
	a.learn = newLearnView(a)
	a.quiz = newQuizView(a)
	a.history = newHistoryView(a)

	if previous != nil {
		a.quiz.chosen = previous.chosen
	}

	a.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(a.loc.T("translate"), theme.DocumentCreateIcon(), a.translate.content()),
		container.NewTabItemWithIcon(a.loc.T("learn"), theme.FileTextIcon(), a.learn.content()),
		container.NewTabItemWithIcon(a.loc.T("quiz"), theme.QuestionIcon(), a.quiz.content()),
		container.NewTabItemWithIcon(a.loc.T("history"), theme.HistoryIcon(), a.history.content()),
	)
	a.tabs.OnSelected = func(*container.TabItem) {
		a.refreshSelected()
	}

	a.themeButton = ttwidget.NewButtonWithIcon("", theme.ColorPaletteIcon(), a.onToggleTheme)
	a.langButton = ttwidget.NewButton(a.otherLanguageLabel(), a.onToggleLanguage)

	title := widget.NewLabel("PersianPro")
	title.TextStyle = fyne.TextStyle{Bold: true}

	header := container.NewBorder(nil, nil,
		title,
		container.NewHBox(a.langButton, a.themeButton),
	)

	if a.statusLabel == nil {
		a.statusLabel = widget.NewLabel("")
		a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}
		a.statusLabel.Wrapping = fyne.TextWrapWord
	}

	content := container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		a.statusLabel,
		nil, nil,
		a.tabs,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.themeButton.SetToolTip(a.loc.T("theme"))
	a.langButton.SetToolTip(a.loc.T("language"))
	a.translate.setupTooltips()
	a.learn.setupTooltips()
	a.history.setupTooltips()

	a.tabs.SelectIndex(selected)
	a.refreshSelected()
}

// refreshSelected re-reads the history into the visible tab
func (a *Application) refreshSelected() {
	switch a.tabs.SelectedIndex() {
	case tabTranslate:
		a.translate.render()
	case tabLearn:
		a.learn.reload()
	case tabQuiz:
		a.quiz.render()
	case tabHistory:
		a.history.render()
	}
}

// onLiveResult is called by the live translator from a background goroutine
func (a *Application) onLiveResult(req translation.Request, res translation.Result) {
	fyne.Do(func() {
		if a.translateState.Apply(req, res) {
			a.translate.render()
		}
	})
}

func (a *Application) onToggleTheme() {
	dark, err := a.config.Settings.ToggleDarkMode(a.ctx)
	a.applyTheme(dark)
	if err != nil {
		a.showStorageError(err)
	}
}

func (a *Application) applyTheme(dark bool) {
	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	a.app.Settings().SetTheme(&variantTheme{variant: variant})
}

func (a *Application) onToggleLanguage() {
	lang, err := a.config.Settings.ToggleLanguage(a.ctx)
	a.loc = locale.New(a.config.Bundle, lang)
	a.setupUI()
	if err != nil {
		a.showStorageError(err)
	}
}

// otherLanguageLabel is the caption of the language toggle
func (a *Application) otherLanguageLabel() string {
	if a.loc.Lang() == settings.LangPersian {
		return "FR"
	}
	return "فا"
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

// showStorageError reports a failed write. The in-memory state is kept.
func (a *Application) showStorageError(err error) {
	a.logger.Warn("storage write failed", zap.Error(err))
	a.updateStatus(a.loc.Tf("storageError", map[string]interface{}{"Error": err.Error()}))
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus(err.Error())
}

// setupKeyboardShortcuts binds keys for the learn and quiz tabs. Keys typed
// into an entry are left alone.
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if _, ok := a.window.Canvas().Focused().(*SourceEntry); ok {
			return
		}

		switch a.tabs.SelectedIndex() {
		case tabLearn:
			switch ev.Name {
			case fyne.KeyLeft:
				a.learn.onPrevious()
			case fyne.KeyRight:
				a.learn.onNext()
			case fyne.KeySpace, fyne.KeyReturn:
				a.learn.onReveal()
			}
		case tabQuiz:
			switch ev.Name {
			case fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4:
				a.quiz.onOptionKey(int(ev.Name[0] - '1'))
			case fyne.KeyReturn, fyne.KeyEnter:
				a.quiz.onNext()
			}
		}
	})
}
