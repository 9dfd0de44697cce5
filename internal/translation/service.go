package translation

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Guarded routes every call of a translator through a circuit breaker
type Guarded struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps t so that calls fail fast while cb is open
func WithBreaker(t Translator, cb *gobreaker.CircuitBreaker) *Guarded {
	return &Guarded{next: t, cb: cb}
}

// Translate implements Translator
func (g *Guarded) Translate(ctx context.Context, text, from, to string) (Result, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.next.Translate(ctx, text, from, to)
	})
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

// Name implements Translator
func (g *Guarded) Name() string {
	return g.next.Name()
}

// Service is the translation entry point for the UI. It never returns an
// error: failures are logged and reported as the Failed sentinel.
type Service struct {
	translator Translator
	logger     *zap.Logger
	timeout    time.Duration
}

// DefaultTimeout bounds a single remote translation
const DefaultTimeout = 30 * time.Second

// NewService creates a service around translator
func NewService(translator Translator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{translator: translator, logger: logger, timeout: DefaultTimeout}
}

// Translate returns an empty result for blank text without calling the
// provider, and Failed when the provider errors.
func (s *Service) Translate(ctx context.Context, text, from, to string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.translator.Translate(ctx, text, from, to)
	if err != nil {
		s.logger.Warn("translation failed",
			zap.String("provider", s.translator.Name()),
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return Failed
	}

	s.logger.Debug("translated",
		zap.String("provider", s.translator.Name()),
		zap.Duration("took", time.Since(start)))
	return result
}
