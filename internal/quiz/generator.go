package quiz

import (
	"math/rand"
	"time"

	"codeberg.org/snonux/persianpro/internal/history"
)

// Kind tells which side of an entry a question asks about
type Kind string

const (
	// Translation shows the source text and asks for the translation
	Translation Kind = "translation"
	// ReverseTranslation shows the translation and asks for the source text
	ReverseTranslation Kind = "reverse-translation"
)

const (
	// MinEntries is the smallest history a quiz can be generated from
	MinEntries = 2
	// SessionSize is the default number of questions per session
	SessionSize = 10
	// Distractors is the number of wrong options sampled per question
	Distractors = 3
)

// Question is a multiple-choice question derived from a history entry
type Question struct {
	ID            string   `json:"id"`
	Word          string   `json:"word"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
	Type          Kind     `json:"type"`
}

// Rand is the source of randomness used by Generate. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time seeded random source
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate builds one question per entry, in input order. Fewer than
// MinEntries entries yield no questions. The result is not truncated.
func Generate(entries []history.Entry, rng Rand) []Question {
	if len(entries) < MinEntries {
		return []Question{}
	}

	questions := make([]Question, 0, len(entries))
	for i, entry := range entries {
		q, ok := questionFor(entries, i, rng)
		if !ok {
			continue
		}
		q.ID = entry.ID
		questions = append(questions, q)
	}
	return questions
}

func questionFor(entries []history.Entry, idx int, rng Rand) (Question, bool) {
	entry := entries[idx]
	reverse := rng.Intn(2) == 1

	q := Question{
		Word:          entry.SourceText,
		CorrectAnswer: entry.TranslatedText,
		Type:          Translation,
	}
	if reverse {
		q.Word, q.CorrectAnswer = entry.TranslatedText, entry.SourceText
		q.Type = ReverseTranslation
	}
	if q.Word == q.CorrectAnswer {
		return Question{}, false
	}

	others := make([]history.Entry, 0, len(entries)-1)
	others = append(others, entries[:idx]...)
	others = append(others, entries[idx+1:]...)
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	seen := map[string]bool{q.CorrectAnswer: true}
	options := make([]string, 0, Distractors+1)
	for _, other := range others {
		if len(options) == Distractors {
			break
		}
		text := other.TranslatedText
		if reverse {
			text = other.SourceText
		}
		if seen[text] {
			continue
		}
		seen[text] = true
		options = append(options, text)
	}
	if len(options) == 0 {
		return Question{}, false
	}

	options = append(options, q.CorrectAnswer)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	q.Options = options

	return q, true
}
