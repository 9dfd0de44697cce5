package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal/storage"
)

// ErrInvalidCandidate is returned by Add for candidates missing required text
var ErrInvalidCandidate = errors.New("invalid translation candidate")

// ClearPrompt is the question asked before all entries are deleted
const ClearPrompt = "Voulez-vous vraiment effacer tout votre historique ?"

// Confirmer answers a blocking yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Store owns the newest-first sequence of saved entries and mirrors it to
// durable storage as a single JSON document.
type Store struct {
	kv       storage.KV
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
	validate *validator.Validate

	mu      sync.RWMutex
	entries []Entry
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for entry timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the entry id generator
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates an empty store on top of kv. Call Load to read persisted entries.
func NewStore(kv storage.KV, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:       kv,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		validate: validator.New(),
		entries:  make([]Entry, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted sequence. On any failure the store stays empty
// and the error is returned for logging only.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]Entry, 0)

	raw, ok, err := s.kv.Get(ctx, storage.KeyHistory)
	if err != nil {
		s.logger.Warn("failed to load history, starting empty", zap.Error(err))
		return fmt.Errorf("failed to load history: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("stored history is corrupt, starting empty", zap.Error(err))
		return fmt.Errorf("failed to decode history: %w", err)
	}

	if entries == nil {
		entries = make([]Entry, 0)
	}
	s.entries = entries
	s.logger.Debug("history loaded", zap.Int("entries", len(entries)))
	return nil
}

// Add turns the candidate into a new entry at the head of the sequence and
// persists the whole sequence. A persistence error is returned alongside the
// entry; the entry stays in memory either way.
func (s *Store) Add(ctx context.Context, c Candidate) (Entry, error) {
	c.SourceText = cleanText(c.SourceText)
	c.TranslatedText = cleanText(c.TranslatedText)
	c.Definition = cleanText(c.Definition)

	if err := s.validate.Struct(c); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UnixMilli()
	// Keep timestamps non-decreasing even if the wall clock steps back
	if len(s.entries) > 0 && ts < s.entries[0].Timestamp {
		ts = s.entries[0].Timestamp
	}

	entry := Entry{
		ID:             s.newID(),
		SourceText:     c.SourceText,
		TranslatedText: c.TranslatedText,
		SourceLang:     c.SourceLang,
		TargetLang:     c.TargetLang,
		Definition:     c.Definition,
		Timestamp:      ts,
	}

	s.entries = append([]Entry{entry}, s.entries...)

	if err := s.persist(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

// List returns a copy of the sequence, newest first
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of saved entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear deletes every entry once the confirmer agrees. It reports whether
// the history was cleared.
func (s *Store) Clear(ctx context.Context, confirmer Confirmer) (bool, error) {
	if confirmer == nil || !confirmer.Confirm(ClearPrompt) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]Entry, 0)
	s.logger.Info("history cleared")
	return true, s.persist(ctx)
}

// persist writes the full sequence. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := s.kv.Set(ctx, storage.KeyHistory, string(data)); err != nil {
		s.logger.Error("failed to persist history", zap.Int("entries", len(s.entries)), zap.Error(err))
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// lineEndings turns CRLF and lone CR into LF so stored text survives a CSV
// round trip
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func cleanText(s string) string {
	return strings.TrimSpace(lineEndings.Replace(s))
}
