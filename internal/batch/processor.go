package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal/history"
	"codeberg.org/snonux/persianpro/internal/translation"
)

// WordEntry represents a line of a batch file
type WordEntry struct {
	Source      string
	Translation string
	// Reverse indicates that only the translation is known and the source
	// text has to be produced by translating backwards
	Reverse bool
}

// NeedsTranslation reports whether the entry misses one side
func (e WordEntry) NeedsTranslation() bool {
	return e.Source == "" || e.Translation == ""
}

// ReadBatchFile reads words from a file and returns WordEntry slice
// Supports formats:
// - Source text only: "chat" (will be translated to the target language)
// - With translation: "chat = gorbe" (both provided, no translation needed)
// - Translation only: "= gorbe" (will be translated to the source language)
func ReadBatchFile(filename string) ([]WordEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return ParseBatch(f)
}

// ParseBatch parses batch lines from r
func ParseBatch(r io.Reader) ([]WordEntry, error) {
	var entries []WordEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		source, target, hasEquals := strings.Cut(line, "=")
		if !hasEquals {
			entries = append(entries, WordEntry{Source: line})
			continue
		}

		source = strings.TrimSpace(source)
		target = strings.TrimSpace(target)
		switch {
		case source == "" && target != "":
			entries = append(entries, WordEntry{Translation: target, Reverse: true})
		case source != "" && target != "":
			entries = append(entries, WordEntry{Source: source, Translation: target})
		}
		// Lines with an empty translation part are ignored
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

// Saver stores a completed translation
type Saver interface {
	Add(ctx context.Context, c history.Candidate) (history.Entry, error)
}

// Summary counts the outcome of an import
type Summary struct {
	Saved   int
	Skipped int // translation failed or entry was rejected
	Failed  int // saved in memory but not persisted
}

func (s Summary) String() string {
	return fmt.Sprintf("%d saved, %d skipped, %d not persisted", s.Saved, s.Skipped, s.Failed)
}

// Importer translates missing sides of batch entries and saves them to history
type Importer struct {
	translator *translation.Service
	saver      Saver
	logger     *zap.Logger
	progress   io.Writer
}

// NewImporter creates an importer. Progress lines are written to progress
// when it is not nil.
func NewImporter(translator *translation.Service, saver Saver, logger *zap.Logger, progress io.Writer) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Importer{translator: translator, saver: saver, logger: logger, progress: progress}
}

// Import processes entries in file order for the from -> to language pair
func (im *Importer) Import(ctx context.Context, entries []WordEntry, from, to string) (Summary, error) {
	var summary Summary

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		candidate, ok := im.complete(ctx, entry, from, to)
		label := entry.Source
		if label == "" {
			label = "= " + entry.Translation
		}
		if !ok {
			fmt.Fprintf(im.progress, "[%d/%d] %s: translation failed, skipped\n", i+1, len(entries), label)
			summary.Skipped++
			continue
		}

		if _, err := im.saver.Add(ctx, candidate); err != nil {
			if errors.Is(err, history.ErrInvalidCandidate) {
				fmt.Fprintf(im.progress, "[%d/%d] %s: invalid entry, skipped\n", i+1, len(entries), label)
				summary.Skipped++
				continue
			}
			im.logger.Warn("imported entry not persisted", zap.String("source", candidate.SourceText), zap.Error(err))
			summary.Failed++
		}

		fmt.Fprintf(im.progress, "[%d/%d] %s = %s\n", i+1, len(entries), candidate.SourceText, candidate.TranslatedText)
		summary.Saved++
	}

	return summary, nil
}

// complete fills in the missing side of entry
func (im *Importer) complete(ctx context.Context, entry WordEntry, from, to string) (history.Candidate, bool) {
	candidate := history.Candidate{
		SourceText:     entry.Source,
		TranslatedText: entry.Translation,
		SourceLang:     from,
		TargetLang:     to,
	}
	if !entry.NeedsTranslation() {
		return candidate, true
	}

	if entry.Reverse {
		result := im.translator.Translate(ctx, entry.Translation, to, from)
		if translation.IsFailed(result) || result.Translation == "" {
			return candidate, false
		}
		candidate.SourceText = result.Translation
		return candidate, true
	}

	result := im.translator.Translate(ctx, entry.Source, from, to)
	if translation.IsFailed(result) || result.Translation == "" {
		return candidate, false
	}
	candidate.TranslatedText = result.Translation
	candidate.Definition = result.Definition
	return candidate, true
}
