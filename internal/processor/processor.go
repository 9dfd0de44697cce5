package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal/breaker"
	"codeberg.org/snonux/persianpro/internal/cli"
	"codeberg.org/snonux/persianpro/internal/gui"
	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/locale"
	"codeberg.org/snonux/persianpro/internal/models"
	"codeberg.org/snonux/persianpro/internal/quiz"
	"codeberg.org/snonux/persianpro/internal/settings"
	"codeberg.org/snonux/persianpro/internal/speech"
	"codeberg.org/snonux/persianpro/internal/storage"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// ModelLister prints the models available to the configured account
type ModelLister interface {
	ListAvailableModels(ctx context.Context, w io.Writer) error
}

// Options are the collaborators of a Processor. Zero values fall back to
// in-memory storage, stdin/stdout and a no-op logger.
type Options struct {
	KV         storage.KV
	Translator translation.Translator
	Speech     speech.Provider
	Player     speech.Player
	Rand       quiz.Rand
	Lister     ModelLister
	In         io.Reader
	Out        io.Writer
	Logger     *zap.Logger

	// Reported by the commands that need the missing service
	TranslatorErr error
	SpeechErr     error
}

// Processor runs the persianpro commands
type Processor struct {
	flags  *cli.Flags
	logger *zap.Logger
	in     io.Reader
	out    io.Writer

	history    *history.Store
	settings   *settings.Store
	translator *translation.Service
	speech     *speech.Service
	player     speech.Player
	rng        quiz.Rand
	lister     ModelLister
	bundle     *i18n.Bundle

	translatorErr error
	speechErr     error

	closer io.Closer
}

// NewProcessor opens the database at flags.StoragePath and builds the
// providers selected by flags. A provider that cannot be built only fails
// the commands that need it.
func NewProcessor(ctx context.Context, flags *cli.Flags, logger *zap.Logger) (*Processor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := storage.Open(flags.StoragePath)
	if err != nil {
		return nil, err
	}

	opts := Options{
		KV:     db,
		Player: speech.NewExecPlayer(),
		Rand:   quiz.NewRand(),
		Lister: models.NewLister(cli.GetOpenAIKey()),
		Logger: logger,
	}

	opts.Translator, opts.TranslatorErr = translation.NewTranslator(ctx, translatorConfig(flags))
	if opts.TranslatorErr != nil {
		logger.Warn("translation provider unavailable", zap.Error(opts.TranslatorErr))
	}

	speechCfg := speechConfig(flags)
	speechCfg.Logger = logger
	opts.Speech, opts.SpeechErr = speech.NewProvider(ctx, speechCfg)
	if opts.SpeechErr != nil {
		logger.Warn("speech provider unavailable", zap.Error(opts.SpeechErr))
	}

	p, err := New(ctx, flags, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	p.closer = db
	return p, nil
}

// New creates a processor from explicit collaborators and loads the stored
// history and preferences
func New(ctx context.Context, flags *cli.Flags, opts Options) (*Processor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	kv := opts.KV
	if kv == nil {
		kv = storage.NewMemory()
	}

	bundle, err := locale.NewBundle()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		flags:         flags,
		logger:        logger,
		in:            opts.In,
		out:           opts.Out,
		history:       history.NewStore(kv, logger),
		settings:      settings.NewStore(kv, logger),
		player:        opts.Player,
		rng:           opts.Rand,
		lister:        opts.Lister,
		bundle:        bundle,
		translatorErr: opts.TranslatorErr,
		speechErr:     opts.SpeechErr,
	}
	if p.in == nil {
		p.in = os.Stdin
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.player == nil {
		p.player = speech.NewExecPlayer()
	}
	if p.rng == nil {
		p.rng = quiz.NewRand()
	}

	translator := opts.Translator
	if translator == nil {
		if p.translatorErr == nil {
			p.translatorErr = fmt.Errorf("no translation provider configured")
		}
		translator = unavailable{err: p.translatorErr}
	}
	p.translator = translation.NewService(
		translation.WithBreaker(translator, breaker.New("translation", logger)), logger)

	if opts.Speech != nil {
		p.speech = speech.NewService(opts.Speech, breaker.New("speech", logger), logger)
	} else if p.speechErr == nil {
		p.speechErr = fmt.Errorf("no speech provider configured")
	}

	// Load failures leave the defaults in place and are already logged
	_ = p.history.Load(ctx)
	p.settings.Load(ctx)

	return p, nil
}

// translatorConfig maps the flags onto the translation provider settings
func translatorConfig(flags *cli.Flags) *translation.Config {
	return &translation.Config{
		Provider:    flags.Provider,
		GeminiKey:   cli.GetGeminiKey(),
		GeminiModel: flags.GeminiModel,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: flags.OpenAIModel,
		OllamaURL:   flags.OllamaURL,
		OllamaModel: flags.OllamaModel,
	}
}

// speechConfig maps the flags onto the speech provider settings
func speechConfig(flags *cli.Flags) *speech.Config {
	config := &speech.Config{
		Provider:    flags.SpeechProvider,
		GeminiKey:   cli.GetGeminiKey(),
		GeminiModel: flags.SpeechModel,
		GeminiVoice: flags.Voice,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: flags.OpenAISpeechModel,
		OpenAIVoice: flags.OpenAIVoice,
		OpenAISpeed: flags.OpenAISpeed,
	}
	if !flags.NoSpeechCache {
		config.CacheDir = filepath.Join(cli.StateDir(), "speech_cache")
	}
	return config
}

// RunGUI launches the graphical interface and blocks until its window closes
func (p *Processor) RunGUI(ctx context.Context) error {
	from, to := p.flags.Languages()

	app := gui.New(&gui.Config{
		History:    p.history,
		Settings:   p.settings,
		Translator: p.translator,
		Speech:     p.speech,
		Player:     p.player,
		Bundle:     p.bundle,
		Logger:     p.logger,
		From:       from,
		To:         to,
		Debounce:   p.flags.Debounce,
		QuizSize:   p.flags.QuizSize,
		ExportDir:  p.flags.ExportDir,
	})
	app.Run()
	return nil
}

// Close releases the database
func (p *Processor) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// localizer returns messages in the stored UI language
func (p *Processor) localizer() *locale.Localizer {
	return locale.New(p.bundle, p.settings.Get().Language)
}

// unavailable stands in for a provider that could not be built
type unavailable struct {
	err error
}

func (u unavailable) Translate(context.Context, string, string, string) (translation.Result, error) {
	return translation.Result{}, u.err
}

func (u unavailable) Name() string {
	return "unavailable"
}
