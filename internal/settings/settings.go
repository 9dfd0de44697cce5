// Package settings persists the user interface preferences.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal/storage"
)

// UI languages
const (
	LangFrench  = "fr"
	LangPersian = "fa"
)

// Preferences are the persisted UI settings
type Preferences struct {
	DarkMode bool
	Language string // LangFrench or LangPersian
}

// Defaults returns light mode with a French UI
func Defaults() Preferences {
	return Preferences{DarkMode: false, Language: LangFrench}
}

// ValidLanguage reports whether lang is a supported UI language
func ValidLanguage(lang string) bool {
	return lang == LangFrench || lang == LangPersian
}

// Store loads and saves Preferences. Each key is optional: a missing or
// unreadable value falls back to its default.
type Store struct {
	kv     storage.KV
	logger *zap.Logger

	mu    sync.RWMutex
	prefs Preferences
}

// NewStore creates a store holding the defaults
func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger, prefs: Defaults()}
}

// Load reads both preferences from storage
func (s *Store) Load(ctx context.Context) Preferences {
	prefs := Defaults()

	if raw, ok, err := s.kv.Get(ctx, storage.KeyDarkMode); err != nil {
		s.logger.Warn("failed to load theme preference", zap.Error(err))
	} else if ok {
		if dark, err := strconv.ParseBool(raw); err == nil {
			prefs.DarkMode = dark
		} else {
			s.logger.Warn("ignoring invalid theme preference", zap.String("value", raw))
		}
	}

	if raw, ok, err := s.kv.Get(ctx, storage.KeyLanguage); err != nil {
		s.logger.Warn("failed to load language preference", zap.Error(err))
	} else if ok {
		if ValidLanguage(raw) {
			prefs.Language = raw
		} else {
			s.logger.Warn("ignoring invalid language preference", zap.String("value", raw))
		}
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	return prefs
}

// Get returns the current preferences
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetDarkMode changes and persists the theme
func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	s.mu.Lock()
	s.prefs.DarkMode = dark
	s.mu.Unlock()

	if err := s.kv.Set(ctx, storage.KeyDarkMode, strconv.FormatBool(dark)); err != nil {
		s.logger.Error("failed to persist theme preference", zap.Error(err))
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleDarkMode flips the theme and returns the new value
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	dark := !s.Get().DarkMode
	return dark, s.SetDarkMode(ctx, dark)
}

// SetLanguage changes and persists the UI language
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	if !ValidLanguage(lang) {
		return fmt.Errorf("unsupported language %q (use %s or %s)", lang, LangFrench, LangPersian)
	}

	s.mu.Lock()
	s.prefs.Language = lang
	s.mu.Unlock()

	if err := s.kv.Set(ctx, storage.KeyLanguage, lang); err != nil {
		s.logger.Error("failed to persist language preference", zap.Error(err))
		return fmt.Errorf("failed to save language: %w", err)
	}
	return nil
}

// ToggleLanguage switches between French and Persian and returns the new value
func (s *Store) ToggleLanguage(ctx context.Context) (string, error) {
	lang := LangPersian
	if s.Get().Language == LangPersian {
		lang = LangFrench
	}
	return lang, s.SetLanguage(ctx, lang)
}
