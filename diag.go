package sch

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidSchedule is the sentinel error for every compilation failure.
// Detect it with errors.Is; the concrete *ParseError carries the rendered
// diagnostic.
var ErrInvalidSchedule = errors.New("invalid schedule expression")

// Context window rendered around the offending offset.
const (
	snippetBefore = 10
	snippetAfter  = 20
)

// ParseError is a fatal diagnostic anchored to the most specific offending
// token. It is a value type: message, token, and the source it points into.
type ParseError struct {
	Message string
	Token   Token
	Source  string
}

// Error renders the message followed by a source snippet and a caret line
// pointing at the offending offset.
func (e *ParseError) Error() string {
	if e == nil {
		return ErrInvalidSchedule.Error()
	}

	snippet, caret := e.context()
	if snippet == "" {
		return e.Message
	}

	return fmt.Sprintf("%s\n  %s\n  %s^", e.Message, snippet, strings.Repeat(" ", caret))
}

// Unwrap returns the sentinel so errors.Is(err, ErrInvalidSchedule) holds
// for every error this package produces.
func (e *ParseError) Unwrap() error { return ErrInvalidSchedule }

// context returns the snippet around the token offset and the caret column
// within it. Window edges back off to rune boundaries so multibyte input
// is never split mid-rune, and the column is counted in runes to keep the
// caret aligned.
func (e *ParseError) context() (string, int) {
	pos := e.Token.Pos
	if pos > len(e.Source) {
		pos = len(e.Source)
	}

	start := pos - snippetBefore
	if start < 0 {
		start = 0
	}

	for start > 0 && !utf8.RuneStart(e.Source[start]) {
		start--
	}

	end := pos + snippetAfter
	if end > len(e.Source) {
		end = len(e.Source)
	}

	for end < len(e.Source) && !utf8.RuneStart(e.Source[end]) {
		end++
	}

	return e.Source[start:end], utf8.RuneCountInString(e.Source[start:pos])
}

// newParseError builds the package's single error kind.
func newParseError(source string, tok Token, format string, args ...any) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Token:   tok,
		Source:  source,
	}
}
