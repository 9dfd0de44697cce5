package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/persianpro/internal/cli"
	"codeberg.org/snonux/persianpro/internal/storage"
	"codeberg.org/snonux/persianpro/internal/testutil"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// zeroRand makes quiz generation deterministic: forward questions and no shuffling
type zeroRand struct{}

func (zeroRand) Intn(int) int                { return 0 }
func (zeroRand) Shuffle(int, func(i, j int)) {}

type fakeLister struct {
	err error
}

func (f *fakeLister) ListAvailableModels(_ context.Context, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "tts-1\n")
	return err
}

const twoEntries = `[
	{"id":"A","sourceText":"chat","translatedText":"gorbe","sourceLang":"French","targetLang":"Persian","timestamp":2000},
	{"id":"B","sourceText":"chien","translatedText":"sag","sourceLang":"French","targetLang":"Persian","definition":"animal","timestamp":1000}
]`

type fixture struct {
	p          *Processor
	out        *bytes.Buffer
	kv         *storage.Memory
	translator *testutil.MockTranslator
	speech     *testutil.MockSpeechProvider
	player     *testutil.MockPlayer
	flags      *cli.Flags
}

func newFixture(t *testing.T, stored, input string, configure func(*cli.Flags, *Options)) *fixture {
	t.Helper()

	f := &fixture{
		out:        &bytes.Buffer{},
		kv:         storage.NewMemory(),
		translator: &testutil.MockTranslator{},
		speech:     &testutil.MockSpeechProvider{},
		player:     &testutil.MockPlayer{},
		flags:      cli.NewFlags(),
	}
	f.flags.ExportDir = t.TempDir()

	ctx := context.Background()
	if stored != "" {
		require.NoError(t, f.kv.Set(ctx, storage.KeyHistory, stored))
	}

	opts := Options{
		KV:         f.kv,
		Translator: f.translator,
		Speech:     f.speech,
		Player:     f.player,
		Rand:       zeroRand{},
		Lister:     &fakeLister{},
		In:         strings.NewReader(input),
		Out:        f.out,
	}
	if configure != nil {
		configure(f.flags, &opts)
	}

	p, err := New(ctx, f.flags, opts)
	require.NoError(t, err)
	f.p = p
	t.Cleanup(func() { _ = p.Close() })
	return f
}

func TestTranslate(t *testing.T) {
	f := newFixture(t, "", "", nil)
	f.translator.Translations = map[string]translation.Result{
		"bonjour": {Translation: "salam", Definition: "greeting"},
	}

	require.NoError(t, f.p.Translate(context.Background(), "bonjour"))

	assert.Equal(t, []string{"Translate: bonjour (French->Persian)"}, f.translator.Calls)
	assert.Contains(t, f.out.String(), "Persian: salam")
	assert.Contains(t, f.out.String(), "greeting")
	assert.Empty(t, f.p.history.List(), "nothing is saved without --save")
}

func TestTranslate_SwapAndSave(t *testing.T) {
	f := newFixture(t, "", "", func(flags *cli.Flags, _ *Options) {
		flags.Swap = true
		flags.Save = true
	})

	require.NoError(t, f.p.Translate(context.Background(), "salam"))

	assert.Equal(t, []string{"Translate: salam (Persian->French)"}, f.translator.Calls)
	entries := f.p.history.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "salam", entries[0].SourceText)
	assert.Equal(t, "Persian", entries[0].SourceLang)
	assert.Equal(t, "French", entries[0].TargetLang)

	raw, ok, err := f.kv.Get(context.Background(), storage.KeyHistory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, raw, `"sourceText":"salam"`)
}

func TestTranslate_Errors(t *testing.T) {
	t.Run("blank text", func(t *testing.T) {
		f := newFixture(t, "", "", nil)
		assert.Error(t, f.p.Translate(context.Background(), "   "))
		assert.Zero(t, f.translator.CallCount())
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newFixture(t, "", "", nil)
		f.translator.Errors = map[string]error{"bonjour": errors.New("quota")}
		assert.Error(t, f.p.Translate(context.Background(), "bonjour"))
	})

	t.Run("provider unavailable", func(t *testing.T) {
		f := newFixture(t, "", "", func(_ *cli.Flags, opts *Options) {
			opts.Translator = nil
			opts.TranslatorErr = errors.New("Gemini API key is required")
		})
		err := f.p.Translate(context.Background(), "bonjour")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})
}

func TestListHistory(t *testing.T) {
	f := newFixture(t, twoEntries, "", nil)
	require.NoError(t, f.p.ListHistory(context.Background()))

	out := f.out.String()
	assert.Less(t, strings.Index(out, "chat"), strings.Index(out, "chien"), "newest first")
	assert.Contains(t, out, "French → Persian")

	empty := newFixture(t, "", "", nil)
	require.NoError(t, empty.p.ListHistory(context.Background()))
	assert.Contains(t, empty.out.String(), "Aucune traduction")
}

func TestExportHistory(t *testing.T) {
	f := newFixture(t, twoEntries, "", nil)
	require.NoError(t, f.p.ExportHistory(context.Background()))

	path := testutil.SingleFile(t, f.flags.ExportDir)
	testutil.AssertFileContains(t, path, "Original,Translation,Note,Source,Target,Timestamp")
	testutil.AssertFileContains(t, path, `"chien","sag","animal"`)
	assert.Contains(t, f.out.String(), path)
}

func TestExportHistory_Anki(t *testing.T) {
	f := newFixture(t, twoEntries, "", func(flags *cli.Flags, _ *Options) {
		flags.Anki = true
		flags.AnkiAudio = true
		flags.AnkiReverse = true
	})
	require.NoError(t, f.p.ExportHistory(context.Background()))

	deck := testutil.SingleFile(t, f.flags.ExportDir)
	csvPath := filepath.Join(deck, "import.csv")
	testutil.AssertFileContains(t, csvPath, "#separator:Comma")
	testutil.AssertFileContains(t, csvPath, "chien,sag,animal,[sound:persianpro_B.wav],persianpro french persian")
	testutil.AssertFileContains(t, csvPath, "sag,chien,animal,,persianpro french persian reverse")
	testutil.AssertFileExists(t, filepath.Join(deck, "collection.media", "persianpro_A.wav"))
	assert.Equal(t, []string{"gorbe", "sag"}, f.speech.Calls)
	assert.Contains(t, f.out.String(), "4 cards, 2 with audio")
}

func TestExportHistory_AnkiWithoutSpeech(t *testing.T) {
	f := newFixture(t, twoEntries, "", func(flags *cli.Flags, opts *Options) {
		flags.Anki = true
		flags.AnkiAudio = true
		opts.Speech = nil
	})
	decks := filepath.Join(f.flags.ExportDir, "decks")
	f.flags.ExportDir = decks

	assert.Error(t, f.p.ExportHistory(context.Background()))
	testutil.AssertFileNotExists(t, decks)

	f.flags.AnkiAudio = false
	require.NoError(t, f.p.ExportHistory(context.Background()))
	testutil.AssertFileExists(t, testutil.SingleFile(t, decks))
	assert.Contains(t, f.out.String(), "2 cards, 0 with audio")
}

func TestClearHistory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		yes     bool
		cleared bool
	}{
		{"confirmed in French", "oui\n", false, true},
		{"confirmed with y", "y\n", false, true},
		{"declined", "n\n", false, false},
		{"no input", "", false, false},
		{"--yes skips the prompt", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, twoEntries, tt.input, func(flags *cli.Flags, _ *Options) {
				flags.Yes = tt.yes
			})

			require.NoError(t, f.p.ClearHistory(context.Background()))

			if tt.cleared {
				assert.Empty(t, f.p.history.List())
				assert.Contains(t, f.out.String(), "Historique effacé.")
			} else {
				assert.Len(t, f.p.history.List(), 2)
				assert.Contains(t, f.out.String(), "Annulé.")
			}
		})
	}
}

func TestClearHistory_StorageFailure(t *testing.T) {
	kv := &testutil.FailingKV{}
	f := newFixture(t, "", "", func(flags *cli.Flags, opts *Options) {
		flags.Yes = true
		opts.KV = kv
	})
	kv.SetErr = errors.New("disk full")

	assert.Error(t, f.p.ClearHistory(context.Background()))
	assert.Empty(t, f.p.history.List(), "memory is cleared even when the write fails")
}

func TestSpeak(t *testing.T) {
	f := newFixture(t, "", "", nil)

	require.NoError(t, f.p.Speak(context.Background(), "salam"))
	assert.Equal(t, []string{"salam"}, f.speech.Calls)
	assert.Equal(t, 1, f.player.PlayCount())

	assert.Error(t, f.p.Speak(context.Background(), " "))

	f.speech.Err = errors.New("quota")
	assert.Error(t, f.p.Speak(context.Background(), "merci"))
}

func TestSpeak_Unavailable(t *testing.T) {
	f := newFixture(t, "", "", func(_ *cli.Flags, opts *Options) {
		opts.Speech = nil
		opts.SpeechErr = errors.New("OpenAI API key is required")
	})

	err := f.p.Speak(context.Background(), "salam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "speech unavailable")
}

func TestImport(t *testing.T) {
	f := newFixture(t, "", "", nil)
	file := testutil.CreateWordList(t, t.TempDir(), "# words", "chat = gorbe", "chien", "= ketab")

	require.NoError(t, f.p.Import(context.Background(), file))

	assert.Equal(t, []string{
		"Translate: chien (French->Persian)",
		"Translate: ketab (Persian->French)",
	}, f.translator.Calls)
	assert.Len(t, f.p.history.List(), 3)
	assert.Contains(t, f.out.String(), "3 saved, 0 skipped, 0 not persisted")
}

func TestImport_TranslatorUnavailable(t *testing.T) {
	f := newFixture(t, "", "", func(_ *cli.Flags, opts *Options) {
		opts.Translator = nil
	})
	dir := t.TempDir()

	// Complete pairs need no translator
	require.NoError(t, f.p.Import(context.Background(), testutil.CreateWordList(t, dir, "chat = gorbe")))
	assert.Len(t, f.p.history.List(), 1)

	assert.Error(t, f.p.Import(context.Background(), testutil.CreateWordList(t, dir, "chien")))
}

func TestImport_MissingFile(t *testing.T) {
	f := newFixture(t, "", "", nil)
	assert.Error(t, f.p.Import(context.Background(), "/nonexistent/words.txt"))
}

func TestPreferences(t *testing.T) {
	f := newFixture(t, "", "", nil)
	ctx := context.Background()

	require.NoError(t, f.p.SetPreference(ctx, "theme", "dark"))
	require.NoError(t, f.p.SetPreference(ctx, "lang", "FA"))

	assert.True(t, f.p.settings.Get().DarkMode)
	assert.Equal(t, "fa", f.p.settings.Get().Language)

	raw, _, err := f.kv.Get(ctx, storage.KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	require.NoError(t, f.p.ShowPreferences(ctx))
	assert.Contains(t, f.out.String(), "theme: dark")
	assert.Contains(t, f.out.String(), "fa (Persian)")

	assert.Error(t, f.p.SetPreference(ctx, "theme", "blue"))
	assert.Error(t, f.p.SetPreference(ctx, "lang", "de"))
	assert.Error(t, f.p.SetPreference(ctx, "font", "big"))
}

func TestMessagesFollowUILanguage(t *testing.T) {
	f := newFixture(t, "", "", nil)
	require.NoError(t, f.p.SetPreference(context.Background(), "lang", "fa"))

	require.NoError(t, f.p.ListHistory(context.Background()))
	assert.NotContains(t, f.out.String(), "Aucune traduction")
}

func TestLearn(t *testing.T) {
	f := newFixture(t, twoEntries, "\nn\np\ns\nq\n", nil)

	require.NoError(t, f.p.Learn(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "[1 / 2] French: chat")
	assert.Contains(t, out, "Persian: gorbe")
	assert.Contains(t, out, "[2 / 2] French: chien")
	assert.Equal(t, []string{"chat"}, f.speech.Calls, "the front side is spoken after moving back")
}

func TestLearn_Empty(t *testing.T) {
	f := newFixture(t, "", "q\n", nil)
	require.NoError(t, f.p.Learn(context.Background()))
	assert.Contains(t, f.out.String(), "Aucune traduction")
}

func TestQuiz(t *testing.T) {
	// Question 1: chat, options [sag gorbe]. Question 2: chien, options [gorbe sag].
	f := newFixture(t, twoEntries, "x\n2\n1\n", nil)

	require.NoError(t, f.p.Quiz(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "1 / 2  chat")
	assert.Contains(t, out, "Correct !")
	assert.Contains(t, out, "Faux. Réponse : sag")
	assert.Contains(t, out, "Score : 1 / 2")
}

func TestQuiz_QuitEarly(t *testing.T) {
	f := newFixture(t, twoEntries, "2\nq\n", nil)

	require.NoError(t, f.p.Quiz(context.Background()))
	assert.Contains(t, f.out.String(), "Score : 1 / 2")
}

func TestQuiz_NotEnoughEntries(t *testing.T) {
	f := newFixture(t, "", "", nil)

	require.NoError(t, f.p.Quiz(context.Background()))
	assert.Contains(t, f.out.String(), "au moins 2")
}

func TestListModels(t *testing.T) {
	f := newFixture(t, "", "", nil)
	require.NoError(t, f.p.ListModels(context.Background()))
	assert.Equal(t, "tts-1\n", f.out.String())

	failing := newFixture(t, "", "", func(_ *cli.Flags, opts *Options) {
		opts.Lister = &fakeLister{err: errors.New("no key")}
	})
	assert.Error(t, failing.p.ListModels(context.Background()))
}

func TestConfigFromFlags(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	flags := cli.NewFlags()
	flags.Provider = "ollama"
	flags.SpeechProvider = "openai"
	flags.OpenAIVoice = "nova"

	tc := translatorConfig(flags)
	assert.Equal(t, "ollama", tc.Provider)
	assert.Equal(t, "gemini-key", tc.GeminiKey)
	assert.Equal(t, flags.OllamaURL, tc.OllamaURL)

	sc := speechConfig(flags)
	assert.Equal(t, "openai", sc.Provider)
	assert.Equal(t, "openai-key", sc.OpenAIKey)
	assert.Equal(t, "nova", sc.OpenAIVoice)
	assert.NotEmpty(t, sc.CacheDir)

	flags.NoSpeechCache = true
	assert.Empty(t, speechConfig(flags).CacheDir)
}

func TestNewProcessor_OpensDatabase(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	flags := cli.NewFlags()
	flags.StoragePath = t.TempDir() + "/persianpro.db"
	flags.Provider = "ollama"
	flags.NoSpeechCache = true

	p, err := NewProcessor(context.Background(), flags, nil)
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.translatorErr, "ollama needs no key")
	assert.Error(t, p.speechErr, "gemini speech needs a key")
	assert.Nil(t, p.speech)
	testutil.AssertFileExists(t, flags.StoragePath)
}
