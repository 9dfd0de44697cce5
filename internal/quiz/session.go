package quiz

import (
	"errors"
	"fmt"

	"codeberg.org/snonux/persianpro/internal/history"
)

var (
	// ErrNotEnoughEntries is returned when the history is too small for a quiz
	ErrNotEnoughEntries = errors.New("not enough saved translations for a quiz")
	// ErrAlreadyAnswered is returned when the current question was answered before
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrNoActiveQuestion is returned when the session has no current question
	ErrNoActiveQuestion = errors.New("no active question")
)

// State of a quiz session
type State int

const (
	Idle State = iota
	Active
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session walks through one round of generated questions and keeps the score
type Session struct {
	questions []Question
	current   int
	answered  bool
	score     int
	state     State
}

// NewSession returns an idle session
func NewSession() *Session {
	return &Session{}
}

// Start generates questions from entries and truncates them to size.
// A size of zero or less means SessionSize.
func (s *Session) Start(entries []history.Entry, rng Rand, size int) error {
	if size <= 0 {
		size = SessionSize
	}

	questions := Generate(entries, rng)
	if len(questions) == 0 {
		return fmt.Errorf("%w: have %d, need at least %d", ErrNotEnoughEntries, len(entries), MinEntries)
	}
	if len(questions) > size {
		questions = questions[:size]
	}

	s.questions = questions
	s.current = 0
	s.answered = false
	s.score = 0
	s.state = Active
	return nil
}

// Current returns the question being asked
func (s *Session) Current() (Question, bool) {
	if s.state != Active {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Answer checks option against the current question. Each question can be
// answered once.
func (s *Session) Answer(option string) (bool, error) {
	if s.state != Active {
		return false, ErrNoActiveQuestion
	}
	if s.answered {
		return false, ErrAlreadyAnswered
	}

	s.answered = true
	correct := option == s.questions[s.current].CorrectAnswer
	if correct {
		s.score++
	}
	return correct, nil
}

// Answered reports whether the current question has been answered
func (s *Session) Answered() bool {
	return s.answered
}

// Next moves to the following question, finishing the session after the last one
func (s *Session) Next() {
	if s.state != Active {
		return
	}
	if s.current+1 >= len(s.questions) {
		s.state = Finished
		return
	}
	s.current++
	s.answered = false
}

// Reset discards the round and returns to idle
func (s *Session) Reset() {
	*s = Session{}
}

// State returns the session state
func (s *Session) State() State {
	return s.state
}

// Score returns the number of correct answers so far
func (s *Session) Score() int {
	return s.score
}

// Len returns the number of questions in the round
func (s *Session) Len() int {
	return len(s.questions)
}

// Position returns the zero based index of the current question
func (s *Session) Position() int {
	return s.current
}
