package translation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last keystroke
const DefaultDebounce = 800 * time.Millisecond

// Request is the input a live translation was issued for
type Request struct {
	Text string
	From string
	To   string
}

// Live translates text as the user types. Each Update restarts the quiet
// period; once it elapses the latest input is translated and the result is
// delivered to the callback only if no newer input arrived meanwhile.
type Live struct {
	service  *Service
	debounce time.Duration
	apply    func(Request, Result)
	logger   *zap.Logger

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

// NewLive creates a debounced translator. apply is called from a background
// goroutine while Live holds its lock, so it must not call back into Live.
func NewLive(service *Service, debounce time.Duration, apply func(Request, Result), logger *zap.Logger) *Live {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Live{service: service, debounce: debounce, apply: apply, logger: logger}
}

// Update registers new input and supersedes any pending or in-flight request
func (l *Live) Update(req Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	l.seq++
	seq := l.seq

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.run(seq, req)
	})
}

func (l *Live) run(seq uint64, req Request) {
	if !l.isLatest(seq) {
		return
	}

	result := l.service.Translate(context.Background(), req.Text, req.From, req.To)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || seq != l.seq {
		l.logger.Debug("discarding stale translation", zap.Uint64("seq", seq), zap.Uint64("latest", l.seq))
		return
	}
	l.apply(req, result)
}

func (l *Live) isLatest(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && seq == l.seq
}

// Cancel discards pending and in-flight requests without stopping Live
func (l *Live) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	if l.timer != nil {
		l.timer.Stop()
	}
}

// Stop cancels everything and ignores further updates
func (l *Live) Stop() {
	l.Cancel()

	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}
