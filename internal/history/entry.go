package history

import "time"

// Candidate is a translation result the user asked to save. It becomes an
// Entry once the store assigns an id and a timestamp.
type Candidate struct {
	SourceText     string `validate:"required"`
	TranslatedText string `validate:"required"`
	SourceLang     string
	TargetLang     string
	Definition     string
}

// Entry is a saved translation record. Entries are never modified after creation.
type Entry struct {
	ID             string `json:"id"`
	SourceText     string `json:"sourceText"`
	TranslatedText string `json:"translatedText"`
	SourceLang     string `json:"sourceLang"`
	TargetLang     string `json:"targetLang"`
	Definition     string `json:"definition,omitempty"`
	Timestamp      int64  `json:"timestamp"` // Unix milliseconds
}

// Time returns the creation time of the entry
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
