package speech

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Pronouncer backs one pronunciation control. While a request is outstanding
// further presses are ignored; separate controls use separate Pronouncers.
type Pronouncer struct {
	service *Service
	player  Player
	logger  *zap.Logger
	busy    atomic.Bool
}

// NewPronouncer creates a pronouncer for a single control
func NewPronouncer(service *Service, player Player, logger *zap.Logger) *Pronouncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pronouncer{service: service, player: player, logger: logger}
}

// Pronounce synthesizes and plays text. It returns false without doing
// anything when a previous call has not finished yet.
func (p *Pronouncer) Pronounce(ctx context.Context, text string) bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	defer p.busy.Store(false)

	audio := p.service.Speak(ctx, text)
	if audio == nil {
		return true
	}

	if err := p.player.Play(ctx, audio); err != nil {
		p.logger.Warn("playback failed", zap.Error(err))
	}
	return true
}

// Busy reports whether a request is outstanding
func (p *Pronouncer) Busy() bool {
	return p.busy.Load()
}
