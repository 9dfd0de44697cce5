// Package anki exports saved translations as an Anki import package: a CSV
// file with Anki file headers and a media folder for pronunciations.
package anki

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/persianpro/internal"
	"codeberg.org/snonux/persianpro/internal/history"
)

const (
	// CSVFile is the name of the import file inside a package
	CSVFile = "import.csv"
	// MediaDir is the media folder inside a package
	MediaDir = "collection.media"
	// Tag is added to every exported card
	Tag = "persianpro"
)

// Media is an audio clip referenced by a card
type Media struct {
	Name string
	Data []byte
}

// Card represents a single Anki flashcard
type Card struct {
	Front string
	Back  string
	Notes string // Optional definition
	Audio *Media // Optional pronunciation of the back side
	Tags  []string
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	IncludeHeaders bool // Write Anki file headers
	Reverse        bool // Add a back to front card for every card
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{IncludeHeaders: true}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// CardFromEntry converts a history entry. Cards are tagged with the
// application and both language labels.
func CardFromEntry(e history.Entry) Card {
	return Card{
		Front: e.SourceText,
		Back:  e.TranslatedText,
		Notes: e.Definition,
		Tags:  []string{Tag, tagFor(e.SourceLang), tagFor(e.TargetLang)},
	}
}

// MediaName returns the file name used for the audio of e
func MediaName(e history.Entry, format string) string {
	return fmt.Sprintf("persianpro_%s.%s", internal.SanitizeFilename(e.ID), format)
}

// Cards returns the cards that will be written, including reversed ones
func (g *Generator) Cards() []Card {
	cards := append([]Card(nil), g.cards...)
	if !g.options.Reverse {
		return cards
	}

	for _, c := range g.cards {
		cards = append(cards, Card{
			Front: c.Back,
			Back:  c.Front,
			Notes: c.Notes,
			Tags:  append(append([]string(nil), c.Tags...), "reverse"),
		})
	}
	return cards
}

// WriteCSV writes the import file
func (g *Generator) WriteCSV(w io.Writer) error {
	if g.options.IncludeHeaders {
		headers := "#separator:Comma\n#html:true\n#tags column:5\n"
		if _, err := io.WriteString(w, headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	for _, card := range g.Cards() {
		record := []string{
			html.EscapeString(card.Front),
			html.EscapeString(card.Back),
			html.EscapeString(card.Notes),
			formatAudioField(card.Audio),
			strings.Join(card.Tags, " "),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write cards: %w", err)
	}
	return nil
}

// GeneratePackage writes the import file and the media folder into dir and
// returns the path of the import file
func (g *Generator) GeneratePackage(dir string) (string, error) {
	mediaDir := filepath.Join(dir, MediaDir)
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	for _, card := range g.cards {
		if card.Audio == nil {
			continue
		}
		path := filepath.Join(mediaDir, card.Audio.Name)
		if err := os.WriteFile(path, card.Audio.Data, 0644); err != nil {
			return "", fmt.Errorf("failed to write media file: %w", err)
		}
	}

	csvPath := filepath.Join(dir, CSVFile)
	file, err := os.Create(csvPath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}

	if err := g.WriteCSV(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close CSV file: %w", err)
	}
	return csvPath, nil
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withAudio int) {
	totalCards = len(g.Cards())

	for _, card := range g.cards {
		if card.Audio != nil {
			withAudio++
		}
	}

	return
}

// formatAudioField formats the audio reference for Anki: [sound:name.mp3]
func formatAudioField(audio *Media) string {
	if audio == nil {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", audio.Name)
}

// tagFor turns a language label into an Anki tag
func tagFor(lang string) string {
	return strings.ToLower(strings.Join(strings.Fields(lang), "_"))
}
