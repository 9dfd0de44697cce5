// Package flashcard provides a looping cursor for reviewing saved translations.
package flashcard

import (
	"errors"
	"fmt"

	"codeberg.org/snonux/persianpro/internal/history"
)

// ErrEmptyDeck is returned when a navigator is created over no entries
var ErrEmptyDeck = errors.New("no saved translations to review")

// Navigator walks a fixed snapshot of entries in a closed loop
type Navigator struct {
	entries  []history.Entry
	index    int
	revealed bool
}

// NewNavigator starts at the first entry with the answer hidden
func NewNavigator(entries []history.Entry) (*Navigator, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDeck
	}
	return &Navigator{entries: append([]history.Entry(nil), entries...)}, nil
}

// Next advances to the following card, wrapping to the first
func (n *Navigator) Next() {
	n.index = (n.index + 1) % len(n.entries)
	n.revealed = false
}

// Previous goes back one card, wrapping to the last
func (n *Navigator) Previous() {
	if n.index > 0 {
		n.index--
	} else {
		n.index = len(n.entries) - 1
	}
	n.revealed = false
}

// Reveal toggles the answer side of the current card
func (n *Navigator) Reveal() {
	n.revealed = !n.revealed
}

// Current returns the entry under the cursor
func (n *Navigator) Current() history.Entry {
	return n.entries[n.index]
}

// Index returns the zero based cursor position
func (n *Navigator) Index() int {
	return n.index
}

// Len returns the deck size
func (n *Navigator) Len() int {
	return len(n.entries)
}

// Revealed reports whether the answer is shown
func (n *Navigator) Revealed() bool {
	return n.revealed
}

// Position formats the cursor as "current / total" for display
func (n *Navigator) Position() string {
	return fmt.Sprintf("%d / %d", n.index+1, len(n.entries))
}
