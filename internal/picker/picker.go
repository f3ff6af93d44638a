// Package picker implements interactive selection of one item from a
// displayed list.
package picker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Digital-Shane/trakt-watch/internal/prompt"
	"golang.org/x/text/cases"
)

// ErrNoItems is returned when Pick is called with an empty list.
var ErrNoItems = errors.New("no items to pick from")

// Outcome classifies a single answer to the pick prompt.
type Outcome int

const (
	// Retry means the answer was rejected and the user is asked again.
	Retry Outcome = iota
	// Choice means the answer named a candidate index.
	Choice
	// Toggle means the user asked to show or hide URLs.
	Toggle
)

// Result is the outcome of one answer. Index is 1-based and only set for
// Choice.
type Result struct {
	Outcome Outcome
	Index   int
}

// Prompter is the console surface the picker needs.
type Prompter interface {
	Prompt(label, def string) (string, error)
	Error(msg string)
}

// Options configures Pick.
type Options[T any] struct {
	// Prefix starts the prompt, e.g. "Pick result".
	Prefix string
	// ShowURLs is the initial URL visibility.
	ShowURLs bool
	// Display renders the list. It is called before every prompt.
	Display func(showURLs bool, items []T) error
	// Label enables picking by a case-insensitive substring of an item's
	// label when set.
	Label func(T) string
}

// HandleInput classifies a raw answer. Cancellation is reported as
// prompt.ErrAborted; rejected answers are reported through report and
// yield Retry.
func HandleInput[T any](input string, items []T, label func(T) string, report func(string)) (Result, error) {
	input = strings.TrimSpace(input)

	switch input {
	case "n", "q":
		return Result{}, prompt.ErrAborted
	case "u":
		return Result{Outcome: Toggle}, nil
	}

	if isDigits(input) {
		n, err := strconv.Atoi(input)
		if err != nil {
			report(fmt.Sprintf("Could not parse '%s' into a number", input))
			return Result{Outcome: Retry}, nil
		}
		return Result{Outcome: Choice, Index: n}, nil
	}

	if label != nil {
		fold := cases.Fold()
		needle := fold.String(input)
		for i, item := range items {
			if strings.Contains(fold.String(label(item)), needle) {
				return Result{Outcome: Choice, Index: i + 1}, nil
			}
		}
	}

	report(fmt.Sprintf("No match for '%s'", input))
	return Result{Outcome: Retry}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Pick displays items and asks until the user selects one or cancels.
func Pick[T any](p Prompter, items []T, opts Options[T]) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrNoItems
	}

	showURLs := opts.ShowURLs
	for {
		if opts.Display != nil {
			if err := opts.Display(showURLs, items); err != nil {
				return zero, err
			}
		}

		answer, err := p.Prompt(promptText(opts.Prefix, len(items), opts.Label != nil, showURLs), "1")
		if err != nil {
			return zero, err
		}

		res, err := HandleInput(answer, items, opts.Label, p.Error)
		if err != nil {
			return zero, err
		}

		switch res.Outcome {
		case Toggle:
			showURLs = !showURLs
		case Choice:
			if res.Index < 1 || res.Index > len(items) {
				p.Error(fmt.Sprintf("Invalid choice, must be 1-%d", len(items)))
				continue
			}
			return items[res.Index-1], nil
		}
	}
}

func promptText(prefix string, n int, byName, showURLs bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, enter 1-%d", prefix, n)
	if byName {
		b.WriteString(" or show name")
	}
	b.WriteString(", q to quit, u to ")
	if showURLs {
		b.WriteString("hide")
	} else {
		b.WriteString("show")
	}
	b.WriteString(" URLs")
	return b.String()
}
