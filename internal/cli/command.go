package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/persianpro/internal"
)

// Runner executes the user-facing operations behind the commands
type Runner interface {
	RunGUI(ctx context.Context) error
	Translate(ctx context.Context, text string) error
	ListHistory(ctx context.Context) error
	ExportHistory(ctx context.Context) error
	ClearHistory(ctx context.Context) error
	Learn(ctx context.Context) error
	Quiz(ctx context.Context) error
	Speak(ctx context.Context, text string) error
	Import(ctx context.Context, file string) error
	SetPreference(ctx context.Context, key, value string) error
	ShowPreferences(ctx context.Context) error
	ListModels(ctx context.Context) error
	Close() error
}

// RunnerFactory builds a Runner once flags and configuration are final
type RunnerFactory func(ctx context.Context, flags *Flags) (Runner, error)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "persianpro",
		Short: "French <-> Persian translator and vocabulary trainer",
		Long: `persianpro translates between French and Persian, keeps a history of
saved translations and turns it into flashcards and quizzes.

Examples:
  persianpro                          # Launch interactive GUI (default)
  persianpro translate bonjour        # Translate French to Persian
  persianpro translate --swap سلام    # Translate Persian to French
  persianpro history export           # Write the history as CSV
  persianpro quiz                     # Quiz yourself in the terminal
  persianpro import words.txt         # Translate and save words from file`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyConfig(flags)
		},
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.RunGUI(ctx)
		}),
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newTranslateCommand(flags, newRunner),
		newHistoryCommand(flags, newRunner),
		newLearnCommand(flags, newRunner),
		newQuizCommand(flags, newRunner),
		newSpeakCommand(flags, newRunner),
		newImportCommand(flags, newRunner),
		newConfigCommand(flags, newRunner),
		newModelsCommand(flags, newRunner),
	)

	bindFlagsToViper(rootCmd)

	return rootCmd
}

// run creates a runner for one command invocation and closes it afterwards
func run(flags *Flags, newRunner RunnerFactory, fn func(ctx context.Context, r Runner, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		r, err := newRunner(ctx, flags)
		if err != nil {
			return err
		}
		defer r.Close()

		return fn(ctx, r, args)
	}
}

func newTranslateCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text and print translation and definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, args []string) error {
			return r.Translate(ctx, strings.Join(args, " "))
		}),
	}
	cmd.Flags().BoolVar(&flags.Swap, "swap", false, "Swap source and target language")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the translation to the history")
	return cmd
}

func newHistoryCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, export or clear saved translations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved translations, newest first",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.ListHistory(ctx)
		}),
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export saved translations as CSV or as an Anki package",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.ExportHistory(ctx)
		}),
	}
	export.Flags().StringVar(&flags.ExportDir, "dir", flags.ExportDir, "Directory for the exported CSV file")
	export.Flags().BoolVar(&flags.Anki, "anki", false, "Write an Anki import package instead of the plain CSV")
	export.Flags().BoolVar(&flags.AnkiAudio, "anki-audio", false, "Add pronunciations to the Anki package")
	export.Flags().BoolVar(&flags.AnkiReverse, "anki-reverse", false, "Add reversed cards to the Anki package")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved translations",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.ClearHistory(ctx)
		}),
	}
	clearCmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(list, export, clearCmd)
	return cmd
}

func newLearnCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "learn",
		Short: "Review saved translations as flashcards",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.Learn(ctx)
		}),
	}
}

func newQuizCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Multiple-choice quiz over saved translations",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.Quiz(ctx)
		}),
	}
	cmd.Flags().IntVar(&flags.QuizSize, "size", flags.QuizSize, "Maximum number of questions")
	return cmd
}

func newSpeakCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "speak <text>",
		Short: "Pronounce text with the configured speech provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, args []string) error {
			return r.Speak(ctx, strings.Join(args, " "))
		}),
	}
}

func newImportCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Translate and save words from file (one per line)",
		Long: `Each line of the file is one of:
  chat            translated from the source to the target language
  chat = gorbe    saved as is
  = gorbe         translated from the target back to the source language`,
		Args: cobra.ExactArgs(1),
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, args []string) error {
			return r.Import(ctx, args[0])
		}),
	}
}

func newConfigCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the stored preferences",
	}

	set := &cobra.Command{
		Use:       "set <theme|lang> <value>",
		Short:     "Set theme (dark|light) or UI language (fr|fa)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"theme", "lang"},
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, args []string) error {
			return r.SetPreference(ctx, args[0], args[1])
		}),
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.ShowPreferences(ctx)
		}),
	}

	cmd.AddCommand(set, show)
	return cmd
}

func newModelsCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available OpenAI models for the current API key",
		Args:  cobra.NoArgs,
		RunE: run(flags, newRunner, func(ctx context.Context, r Runner, _ []string) error {
			return r.ListModels(ctx)
		}),
	}
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	// Global flags
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.persianpro.yaml)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.BoolVar(&flags.Debug, "debug", false, "Development logging (implies --log-level debug)")
	pf.StringVar(&flags.StoragePath, "db", flags.StoragePath, "SQLite database for history and preferences")

	// Translation flags
	pf.StringVar(&flags.From, "from", flags.From, "Source language label, e.g. French")
	pf.StringVar(&flags.To, "to", flags.To, "Target language label, e.g. Persian")
	pf.StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: gemini, openai or ollama")
	pf.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini translation model")
	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI translation model")
	pf.StringVar(&flags.OllamaURL, "ollama-url", flags.OllamaURL, "Ollama server address")
	pf.StringVar(&flags.OllamaModel, "ollama-model", flags.OllamaModel, "Ollama translation model")
	pf.DurationVar(&flags.Debounce, "debounce", flags.Debounce, "Delay after the last keystroke before translating in the GUI")

	// Speech flags
	pf.StringVar(&flags.SpeechProvider, "speech-provider", flags.SpeechProvider, "Speech provider: gemini or openai")
	pf.StringVar(&flags.SpeechModel, "speech-model", flags.SpeechModel, "Gemini text-to-speech model")
	pf.StringVar(&flags.Voice, "voice", flags.Voice, "Gemini prebuilt voice")
	pf.StringVar(&flags.OpenAISpeechModel, "openai-speech-model", flags.OpenAISpeechModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	pf.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	pf.BoolVar(&flags.NoSpeechCache, "no-speech-cache", false, "Do not cache synthesized audio on disk")
}

// viperKeys maps configuration keys to the flags they override
var viperKeys = map[string]string{
	"log.level":            "log-level",
	"storage.path":         "db",
	"translation.from":     "from",
	"translation.to":       "to",
	"translation.provider": "provider",
	"translation.debounce": "debounce",
	"gemini.model":         "gemini-model",
	"openai.model":         "openai-model",
	"ollama.url":           "ollama-url",
	"ollama.model":         "ollama-model",
	"speech.provider":      "speech-provider",
	"speech.model":         "speech-model",
	"speech.voice":         "voice",
	"speech.openai_model":  "openai-speech-model",
	"speech.openai_voice":  "openai-voice",
	"speech.openai_speed":  "openai-speed",
	"speech.no_cache":      "no-speech-cache",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for key, name := range viperKeys {
		viper.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
	}

	for _, sub := range cmd.Commands() {
		switch sub.Name() {
		case "quiz":
			viper.BindPFlag("quiz.size", sub.Flags().Lookup("size"))
		case "history":
			for _, hc := range sub.Commands() {
				if hc.Name() == "export" {
					viper.BindPFlag("export.directory", hc.Flags().Lookup("dir"))
				}
			}
		}
	}
}

// applyConfig copies configuration file and environment values into flags.
// Flags given on the command line take precedence.
func applyConfig(flags *Flags) {
	flags.LogLevel = viper.GetString("log.level")
	flags.StoragePath = viper.GetString("storage.path")
	flags.From = viper.GetString("translation.from")
	flags.To = viper.GetString("translation.to")
	flags.Provider = viper.GetString("translation.provider")
	flags.Debounce = viper.GetDuration("translation.debounce")
	flags.GeminiModel = viper.GetString("gemini.model")
	flags.OpenAIModel = viper.GetString("openai.model")
	flags.OllamaURL = viper.GetString("ollama.url")
	flags.OllamaModel = viper.GetString("ollama.model")
	flags.SpeechProvider = viper.GetString("speech.provider")
	flags.SpeechModel = viper.GetString("speech.model")
	flags.Voice = viper.GetString("speech.voice")
	flags.OpenAISpeechModel = viper.GetString("speech.openai_model")
	flags.OpenAIVoice = viper.GetString("speech.openai_voice")
	flags.OpenAISpeed = viper.GetFloat64("speech.openai_speed")
	flags.NoSpeechCache = viper.GetBool("speech.no_cache")
	flags.QuizSize = viper.GetInt("quiz.size")
	flags.ExportDir = viper.GetString("export.directory")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".persianpro" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".persianpro")
	}

	// Environment variables, e.g. PERSIANPRO_TRANSLATION_PROVIDER
	viper.SetEnvPrefix("PERSIANPRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("gemini.api_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}
