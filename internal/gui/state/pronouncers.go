package state

import (
	"sync"

	"codeberg.org/snonux/persianpro/internal/speech"
)

// Pronouncers keeps one pronouncer per named control. Views are rebuilt
// when the UI language changes; a rebuilt control gets the pronouncer of
// the control it replaces, so a clip still playing keeps it busy.
type Pronouncers struct {
	create func() *speech.Pronouncer

	mu       sync.Mutex
	controls map[string]*control
}

type control struct {
	pronouncer *speech.Pronouncer
	refresh    func()
}

// NewPronouncers creates a registry. A nil create disables speech and
// every control gets a nil pronouncer.
func NewPronouncers(create func() *speech.Pronouncer) *Pronouncers {
	return &Pronouncers{create: create, controls: make(map[string]*control)}
}

// Attach returns the pronouncer for key and makes refresh the callback
// run by Refresh, replacing the one of any earlier control
func (p *Pronouncers) Attach(key string, refresh func()) *speech.Pronouncer {
	if p.create == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.controls[key]
	if !ok {
		c = &control{pronouncer: p.create()}
		p.controls[key] = c
	}
	c.refresh = refresh
	return c.pronouncer
}

// Refresh runs the callback of the control currently attached to key
func (p *Pronouncers) Refresh(key string) {
	p.mu.Lock()
	var refresh func()
	if c, ok := p.controls[key]; ok {
		refresh = c.refresh
	}
	p.mu.Unlock()

	if refresh != nil {
		refresh()
	}
}
