package sch

import "strings"

// specialChars are the characters the tokenizer emits as single-character
// tokens: parentheses, range, separator, exclusion, date and modulus marks.
const specialChars = "()-,!/%"

// Token is one lexical unit of a schedule expression. The value and source
// offset are fixed at creation; classification beyond the Special flag is
// derived from the text on demand so the tokenizer stays error-free.
type Token struct {
	Value   string
	Pos     int
	Special bool
}

// is reports whether the token is the given special character.
func (t Token) is(ch string) bool {
	return t.Special && t.Value == ch
}

// IsNumeric reports whether the token is an unsigned integer literal.
// Signs are separate '-' tokens and handled by the parser.
func (t Token) IsNumeric() bool {
	if t.Special || t.Value == "" {
		return false
	}

	for _, r := range t.Value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// IsExpression reports whether the token can name an expression: any
// non-special word that is not a number. Whether the name is actually
// recognized is decided during compilation, so misspelled names are
// diagnosed there rather than as generic parse errors.
func (t Token) IsExpression() bool {
	return !t.Special && t.Value != "" && !t.IsNumeric()
}

// IsDayKeyword reports whether the token is a weekday name.
func (t Token) IsDayKeyword() bool {
	_, ok := t.DayOrdinal()
	return ok
}

// DayOrdinal resolves a weekday name to its 1-7 ordinal, Monday=1. The
// second return is false when the token is not a weekday name.
func (t Token) DayOrdinal() (int, bool) {
	if t.Special {
		return 0, false
	}

	ord, ok := dayOrdinals[strings.ToLower(t.Value)]

	return ord, ok
}

// tokenize splits input into an ordered token sequence. Whitespace ends the
// current token and is discarded; each special character is its own token;
// everything else accumulates. No errors are raised here, malformed
// sequences surface during parsing.
func tokenize(input string) []Token {
	var tokens []Token

	start := -1 // offset of the in-progress token, -1 when none

	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, Token{Value: input[start:end], Pos: start})
			start = -1
		}
	}

	for i, r := range input {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush(i)
		case strings.ContainsRune(specialChars, r):
			flush(i)
			tokens = append(tokens, Token{Value: string(r), Pos: i, Special: true})
		default:
			if start < 0 {
				start = i
			}
		}
	}

	flush(len(input))

	return tokens
}
