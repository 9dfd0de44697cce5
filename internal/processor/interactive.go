package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/snonux/persianpro/internal/flashcard"
	"codeberg.org/snonux/persianpro/internal/quiz"
)

// Learn walks through the saved entries as flashcards. Each input line is a
// command: Enter or r reveals, n and p move, s speaks the shown side and q quits.
func (p *Processor) Learn(ctx context.Context) error {
	loc := p.localizer()

	deck, err := flashcard.NewNavigator(p.history.List())
	if errors.Is(err, flashcard.ErrEmptyDeck) {
		fmt.Fprintln(p.out, loc.T("noHistory"))
		return nil
	}
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(p.in)
	for {
		p.printCard(deck)
		fmt.Fprint(p.out, "[Enter/r] reveal  [n]ext  [p]revious  [s]peak  [q]uit > ")

		if !scanner.Scan() {
			fmt.Fprintln(p.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "r":
			deck.Reveal()
		case "n":
			deck.Next()
		case "p":
			deck.Previous()
		case "s":
			if err := p.Speak(ctx, shownText(deck)); err != nil {
				fmt.Fprintf(p.out, "Warning: %v\n", err)
			}
		case "q":
			return nil
		}
	}
}

func (p *Processor) printCard(deck *flashcard.Navigator) {
	entry := deck.Current()

	fmt.Fprintf(p.out, "\n[%s] %s: %s\n", deck.Position(), entry.SourceLang, entry.SourceText)
	if !deck.Revealed() {
		return
	}
	fmt.Fprintf(p.out, "        %s: %s\n", entry.TargetLang, entry.TranslatedText)
	if entry.Definition != "" {
		fmt.Fprintf(p.out, "        %s\n", entry.Definition)
	}
}

// shownText is the side of the card the user is looking at
func shownText(deck *flashcard.Navigator) string {
	if deck.Revealed() {
		return deck.Current().TranslatedText
	}
	return deck.Current().SourceText
}

// Quiz asks multiple-choice questions in the terminal. Answers are given by
// option number; q ends the round early.
func (p *Processor) Quiz(ctx context.Context) error {
	loc := p.localizer()

	session := quiz.NewSession()
	err := session.Start(p.history.List(), p.rng, p.flags.QuizSize)
	if errors.Is(err, quiz.ErrNotEnoughEntries) {
		fmt.Fprintln(p.out, loc.Tf("needMoreEntries", map[string]interface{}{"Min": quiz.MinEntries}))
		return nil
	}
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(p.in)
	for session.State() == quiz.Active {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, _ := session.Current()
		fmt.Fprintf(p.out, "\n%d / %d  %s\n", session.Position()+1, session.Len(), q.Word)
		for i, opt := range q.Options {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
		}

		choice, quit := p.readChoice(scanner, len(q.Options))
		if quit {
			break
		}

		correct, err := session.Answer(q.Options[choice])
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(p.out, loc.T("correct"))
		} else {
			fmt.Fprintln(p.out, loc.Tf("wrong", map[string]interface{}{"Answer": q.CorrectAnswer}))
		}
		session.Next()
	}

	fmt.Fprintln(p.out, loc.Tf("score", map[string]interface{}{"Score": session.Score(), "Total": session.Len()}))
	return nil
}

// readChoice prompts until a valid option number is entered. It reports
// quit on q or end of input.
func (p *Processor) readChoice(scanner *bufio.Scanner, options int) (int, bool) {
	for {
		fmt.Fprintf(p.out, "[1-%d, q] > ", options)
		if !scanner.Scan() {
			fmt.Fprintln(p.out)
			return 0, true
		}

		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "q") {
			return 0, true
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= options {
			return n - 1, false
		}
	}
}
