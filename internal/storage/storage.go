package storage

import (
	"context"
	"fmt"
	"sync"
)

// Keys under which application state is persisted
const (
	KeyHistory  = "persianpro_history"
	KeyDarkMode = "persianpro_dark"
	KeyLanguage = "persianpro_lang"
)

// KV is durable local key/value storage. Values are written as a whole,
// never partially.
type KV interface {
	// Get returns the value for key; ok is false when the key is missing
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value for key
	Set(ctx context.Context, key, value string) error
}

// StorageError reports a failed storage operation
type StorageError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Memory is an in-process KV used when no database is configured and in tests
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements KV
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
