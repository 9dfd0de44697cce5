package speech

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Cached stores synthesized clips on disk, keyed by text and voice settings
type Cached struct {
	next     Provider
	dir      string
	voiceKey string
	logger   *zap.Logger
}

// NewCached wraps next with a cache in dir
func NewCached(next Provider, dir, voiceKey string, logger *zap.Logger) (*Cached, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cached{next: next, dir: dir, voiceKey: voiceKey, logger: logger}, nil
}

// Synthesize implements Provider
func (c *Cached) Synthesize(ctx context.Context, text string) (*Audio, error) {
	for _, format := range []string{"wav", "mp3"} {
		if data, err := os.ReadFile(c.path(text, format)); err == nil && len(data) > 0 {
			return &Audio{Data: data, Format: format}, nil
		}
	}

	audio, err := c.next.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	if audio == nil {
		return nil, fmt.Errorf("%s returned no audio", c.next.Name())
	}

	// Cache errors are not fatal, the clip is still played
	if err := os.WriteFile(c.path(text, audio.Format), audio.Data, 0644); err != nil {
		c.logger.Warn("failed to cache speech clip", zap.String("dir", c.dir), zap.Error(err))
	}
	return audio, nil
}

// Name implements Provider
func (c *Cached) Name() string {
	return c.next.Name()
}

func (c *Cached) path(text, format string) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(c.voiceKey))
	return filepath.Join(c.dir, hex.EncodeToString(h.Sum(nil))+"."+format)
}
