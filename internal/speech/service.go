package speech

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single synthesis request
const DefaultTimeout = 60 * time.Second

// Service synthesizes speech for the UI. Failures are logged and reported as
// a nil clip, never as an error.
type Service struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
	logger   *zap.Logger
	timeout  time.Duration
}

// NewService creates a service around provider. cb may be nil.
func NewService(provider Provider, cb *gobreaker.CircuitBreaker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cb: cb, logger: logger, timeout: DefaultTimeout}
}

// Speak returns the clip for text, or nil for blank text or on failure
func (s *Service) Speak(ctx context.Context, text string) *Audio {
	text = strings.TrimSpace(text)
	if text == "" || s.provider == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := s.synthesize(ctx, text)
	if err != nil {
		s.logger.Warn("speech synthesis failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err))
		return nil
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil
	}
	return audio
}

func (s *Service) synthesize(ctx context.Context, text string) (*Audio, error) {
	if s.cb == nil {
		return s.provider.Synthesize(ctx, text)
	}
	out, err := s.cb.Execute(func() (interface{}, error) {
		return s.provider.Synthesize(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return out.(*Audio), nil
}
