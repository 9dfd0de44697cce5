package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal/anki"
	"codeberg.org/snonux/persianpro/internal/batch"
	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/settings"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// Translate prints the translation of text and saves it when --save is set
func (p *Processor) Translate(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to translate")
	}
	if p.translatorErr != nil {
		return fmt.Errorf("translation unavailable: %w", p.translatorErr)
	}

	from, to := p.flags.Languages()
	result := p.translator.Translate(ctx, text, from, to)
	if translation.IsFailed(result) {
		return fmt.Errorf("failed to translate %q from %s to %s", text, from, to)
	}

	fmt.Fprintf(p.out, "%s: %s\n", to, result.Translation)
	if result.Definition != "" {
		fmt.Fprintf(p.out, "  %s\n", result.Definition)
	}

	if !p.flags.Save {
		return nil
	}

	entry, err := p.history.Add(ctx, history.Candidate{
		SourceText:     text,
		TranslatedText: result.Translation,
		SourceLang:     from,
		TargetLang:     to,
		Definition:     result.Definition,
	})
	if errors.Is(err, history.ErrInvalidCandidate) {
		return err
	}
	if err != nil {
		return fmt.Errorf("translation kept for this session only: %w", err)
	}

	fmt.Fprintf(p.out, "%s (%s)\n", p.localizer().T("saved"), entry.ID)
	return nil
}

// ListHistory prints the saved entries, newest first
func (p *Processor) ListHistory(ctx context.Context) error {
	entries := p.history.List()
	if len(entries) == 0 {
		fmt.Fprintln(p.out, p.localizer().T("noHistory"))
		return nil
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s → %s\n",
			e.Time().Local().Format("2006-01-02 15:04"),
			e.SourceText, e.TranslatedText, e.SourceLang, e.TargetLang)
	}
	return w.Flush()
}

// ExportHistory writes the CSV export, or an Anki package with --anki, into
// the export directory
func (p *Processor) ExportHistory(ctx context.Context) error {
	if p.flags.Anki {
		return p.exportAnki(ctx)
	}

	path, err := p.history.ExportFile(p.flags.ExportDir)
	if err != nil {
		return err
	}

	p.logger.Info("history exported", zap.String("path", path), zap.Int("entries", p.history.Len()))
	fmt.Fprintln(p.out, p.localizer().Tf("exported", map[string]interface{}{"Path": path}))
	return nil
}

func (p *Processor) exportAnki(ctx context.Context) error {
	entries := p.history.List()
	if len(entries) == 0 {
		fmt.Fprintln(p.out, p.localizer().T("noHistory"))
		return nil
	}
	if p.flags.AnkiAudio && p.speech == nil {
		return fmt.Errorf("speech unavailable: %w", p.speechErr)
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		IncludeHeaders: true,
		Reverse:        p.flags.AnkiReverse,
	})
	for i, e := range entries {
		card := anki.CardFromEntry(e)
		if p.flags.AnkiAudio {
			fmt.Fprintf(p.out, "[%d/%d] %s\n", i+1, len(entries), e.TranslatedText)
			if audio := p.speech.Speak(ctx, e.TranslatedText); audio != nil {
				card.Audio = &anki.Media{Name: anki.MediaName(e, audio.Format), Data: audio.Data}
			}
		}
		gen.AddCard(card)
	}

	dir := filepath.Join(p.flags.ExportDir, fmt.Sprintf("persianpro_anki_%d", time.Now().UnixMilli()))
	path, err := gen.GeneratePackage(dir)
	if err != nil {
		return err
	}

	total, withAudio := gen.Stats()
	p.logger.Info("anki package exported",
		zap.String("path", path), zap.Int("cards", total), zap.Int("audio", withAudio))
	fmt.Fprintln(p.out, p.localizer().Tf("exported", map[string]interface{}{"Path": path}))
	fmt.Fprintf(p.out, "%d cards, %d with audio\n", total, withAudio)
	return nil
}

// ClearHistory deletes every entry after a y/N prompt, or directly with --yes
func (p *Processor) ClearHistory(ctx context.Context) error {
	loc := p.localizer()
	scanner := bufio.NewScanner(p.in)

	confirm := history.ConfirmFunc(func(prompt string) bool {
		if p.flags.Yes {
			return true
		}
		fmt.Fprintf(p.out, "%s [y/N] ", loc.T("clearConfirm"))
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes", "o", "oui":
			return true
		}
		return false
	})

	cleared, err := p.history.Clear(ctx, confirm)
	if !cleared {
		fmt.Fprintln(p.out, loc.T("cancelled"))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, loc.T("cleared"))
	return nil
}

// Speak synthesizes and plays text
func (p *Processor) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to speak")
	}
	if p.speech == nil {
		return fmt.Errorf("speech unavailable: %w", p.speechErr)
	}

	audio := p.speech.Speak(ctx, text)
	if audio == nil {
		return fmt.Errorf("failed to synthesize %q", text)
	}
	return p.player.Play(ctx, audio)
}

// Import translates and saves the entries of a batch file
func (p *Processor) Import(ctx context.Context, file string) error {
	entries, err := batch.ReadBatchFile(file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No entries found")
		return nil
	}

	needsTranslation := false
	for _, e := range entries {
		if e.NeedsTranslation() {
			needsTranslation = true
			break
		}
	}
	if needsTranslation && p.translatorErr != nil {
		return fmt.Errorf("translation unavailable: %w", p.translatorErr)
	}

	from, to := p.flags.Languages()
	importer := batch.NewImporter(p.translator, p.history, p.logger, p.out)
	summary, err := importer.Import(ctx, entries, from, to)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\n=== Import Summary ===\n%s\n", summary)
	if summary.Failed > 0 {
		return fmt.Errorf("%d entries could not be persisted", summary.Failed)
	}
	return nil
}

// SetPreference changes one UI preference. Keys are "theme" (dark or light)
// and "lang" (fr or fa).
func (p *Processor) SetPreference(ctx context.Context, key, value string) error {
	value = strings.ToLower(strings.TrimSpace(value))

	switch strings.ToLower(key) {
	case "theme":
		switch value {
		case "dark":
			return p.settings.SetDarkMode(ctx, true)
		case "light":
			return p.settings.SetDarkMode(ctx, false)
		}
		return fmt.Errorf("unsupported theme %q (use dark or light)", value)
	case "lang", "language":
		return p.settings.SetLanguage(ctx, value)
	default:
		return fmt.Errorf("unknown preference %q (use theme or lang)", key)
	}
}

// ShowPreferences prints the stored UI preferences
func (p *Processor) ShowPreferences(ctx context.Context) error {
	prefs := p.settings.Get()

	theme := "light"
	if prefs.DarkMode {
		theme = "dark"
	}
	lang := "French"
	if prefs.Language == settings.LangPersian {
		lang = "Persian"
	}

	fmt.Fprintf(p.out, "theme: %s\n", theme)
	fmt.Fprintf(p.out, "lang:  %s (%s)\n", prefs.Language, lang)
	return nil
}

// ListModels prints the OpenAI models usable for translation and speech
func (p *Processor) ListModels(ctx context.Context) error {
	if p.lister == nil {
		return fmt.Errorf("model listing unavailable")
	}
	return p.lister.ListAvailableModels(ctx, p.out)
}
