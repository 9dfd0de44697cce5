// Package quiz turns saved translations into multiple-choice questions.
//
// Generate is a pure function over the history entries; all randomness comes
// from the injected Rand. Session runs one round of at most SessionSize
// questions and tracks the score.
package quiz
