package sch

import "strconv"

// maxNestingDepth bounds expression recursion so adversarial input cannot
// exhaust the stack. The grammar only needs two levels: top-level
// expressions and expressions nested inside group(...).
const maxNestingDepth = 8

// parser holds one compilation's token stream. Cursor positions are passed
// explicitly: every parse method takes the index of the token it starts at
// and returns the index of the first token it did not consume. A parser
// serves a single compilation and is not safe for concurrent reuse.
type parser struct {
	source string
	tokens []Token
}

func newParser(source string) *parser {
	return &parser{source: source, tokens: tokenize(source)}
}

func (p *parser) errorAt(tok Token, format string, args ...any) error {
	return newParseError(p.source, tok, format, args...)
}

// endToken anchors end-of-input diagnostics just past the last character.
func (p *parser) endToken() Token {
	return Token{Pos: len(p.source)}
}

/*
parseDocument parses the whole token stream:

	document   := (expression | ',')*
	expression := NAME '(' argument? (',' argument)* ')'
	argument   := '!'? (wildcard | dayRange | numberOrDateRange | expression)
	wildcard   := '%' modulus?
	bound      := signedNumber | signedNumber '/' signedNumber
	dayRange   := DAYNAME ('-' (DAYNAME | signedNumber))? modulus?
	modulus    := '%' signedNumber

Top-level commas are cosmetic and skipped; a special character or bare
number there is fatal. Names are not resolved here: any word can open an
expression, and unrecognized names are rejected during compilation.
*/
func (p *parser) parseDocument() ([]*Expression, error) {
	var doc []*Expression

	i := 0
	for i < len(p.tokens) {
		tok := p.tokens[i]

		switch {
		case tok.IsExpression():
			var nodes []Node

			next, err := p.parseExpression(i, 0, &nodes)
			if err != nil {
				return nil, err
			}

			i = next

			for _, n := range nodes {
				expr, ok := n.(*Expression)
				if !ok {
					return nil, p.errorAt(n.FirstToken(), "expected an expression")
				}

				doc = append(doc, expr)
			}
		case tok.is(","):
			i++
		default:
			return nil, p.errorAt(tok, "expected an expression")
		}
	}

	return doc, nil
}

// parseExpression consumes NAME '(' arg [, arg]* ')' starting at the name
// token and appends the node to out. Commas between arguments are cosmetic:
// consumed when present, never required.
func (p *parser) parseExpression(idx, depth int, out *[]Node) (int, error) {
	name := p.tokens[idx]

	if depth >= maxNestingDepth {
		return idx, p.errorAt(name, "expression nesting too deep")
	}

	if idx+1 >= len(p.tokens) {
		return idx, p.errorAt(name, "missing opening parenthesis")
	}

	if !p.tokens[idx+1].is("(") {
		return idx, p.errorAt(name, "unexpected token %q, expected opening parenthesis", p.tokens[idx+1].Value)
	}

	expr := &Expression{Name: name.Value, First: name}

	i := idx + 2
	for {
		if i >= len(p.tokens) {
			return i, p.errorAt(name, "missing closing parenthesis")
		}

		if p.tokens[i].is(")") {
			i++
			break
		}

		next, err := p.parseArgument(i, depth, &expr.Args)
		if err != nil {
			return next, err
		}

		i = next

		if i < len(p.tokens) && p.tokens[i].is(",") {
			i++
		}
	}

	*out = append(*out, expr)

	return i, nil
}

// parseArgument consumes one argument (possibly a nested expression)
// starting at idx and appends it to out. A ')' at the argument position is
// the empty-argument-list terminator and is left for the caller; a ','
// there means the argument between separators is missing.
func (p *parser) parseArgument(idx, depth int, out *[]Node) (int, error) {
	i := idx
	start := p.tokens[i]

	exclude := false
	if start.is("!") {
		exclude = true

		i++
		if i >= len(p.tokens) {
			return i, p.errorAt(start, "unexpected end of format string")
		}
	}

	tok := p.tokens[i]

	switch {
	case tok.is(")"):
		if exclude {
			return i, p.errorAt(tok, "expected a value after \"!\"")
		}

		return i, nil
	case tok.is(","):
		return i, p.errorAt(tok, "empty argument")
	case tok.IsExpression() && i+1 < len(p.tokens) && p.tokens[i+1].is("("):
		// A word followed by '(' is a nested expression; a bare word falls
		// through and is read as a bound, so day names keep working.
		if exclude {
			return i, p.errorAt(tok, "cannot exclude an expression")
		}

		return p.parseExpression(i, depth+1, out)
	}

	arg := &Argument{Exclude: exclude, First: start}

	if tok.is("%") {
		arg.Kind = ArgWildcard
		i++
	} else {
		var err error

		i, err = p.parseBounds(i, arg)
		if err != nil {
			return i, err
		}
	}

	if i < len(p.tokens) && p.tokens[i].is("%") {
		n, next, err := p.parseSignedNumber(i + 1)
		if err != nil {
			return next, err
		}

		arg.Modulus = n
		arg.HasModulus = true
		i = next
	}

	*out = append(*out, arg)

	return i, nil
}

// bound is one resolved end of a range: a weekday ordinal, a signed number,
// or a calendar date.
type bound struct {
	num    int
	date   Date
	isDay  bool
	isDate bool
	tok    Token
}

// parseBounds consumes a weekday, number, or month/day date, optionally
// followed by '-' and a second bound of the same kind, and fills in the
// argument's kind and value.
func (p *parser) parseBounds(idx int, arg *Argument) (int, error) {
	first, i, err := p.parseBound(idx, arg.First)
	if err != nil {
		return i, err
	}

	switch {
	case first.isDay:
		arg.Kind = ArgDays
		arg.Low, arg.High = first.num, first.num
	case first.isDate:
		arg.Kind = ArgDates
		arg.LowDate, arg.HighDate = first.date, first.date
	default:
		arg.Kind = ArgNumber
		arg.Number = first.num
	}

	if i >= len(p.tokens) || !p.tokens[i].is("-") {
		return i, nil
	}

	second, next, err := p.parseBound(i+1, arg.First)
	if err != nil {
		return next, err
	}

	i = next
	arg.Ranged = true

	switch arg.Kind {
	case ArgDays:
		if second.isDate {
			return i, p.errorAt(arg.First, "cannot mix numeric and date ranges")
		}

		arg.High = second.num
	case ArgDates:
		if !second.isDate {
			return i, p.errorAt(arg.First, "cannot mix numeric and date ranges")
		}

		arg.HighDate = second.date
	default:
		if second.isDate {
			return i, p.errorAt(arg.First, "cannot mix numeric and date ranges")
		}

		if second.isDay {
			return i, p.errorAt(second.tok, "expected a number, found %q", second.tok.Value)
		}

		arg.Kind = ArgRange
		arg.Low, arg.High = arg.Number, second.num
		arg.Number = 0
	}

	return i, nil
}

// parseBound consumes one bound. argStart anchors calendar validation
// diagnostics to the first token of the enclosing argument.
func (p *parser) parseBound(idx int, argStart Token) (bound, int, error) {
	if idx >= len(p.tokens) {
		return bound{}, idx, p.errorAt(p.endToken(), "unexpected end of format string")
	}

	tok := p.tokens[idx]
	if ord, ok := tok.DayOrdinal(); ok {
		return bound{num: ord, isDay: true, tok: tok}, idx + 1, nil
	}

	n, i, err := p.parseSignedNumber(idx)
	if err != nil {
		return bound{}, i, err
	}

	if i < len(p.tokens) && p.tokens[i].is("/") {
		day, next, err := p.parseSignedNumber(i + 1)
		if err != nil {
			return bound{}, next, err
		}

		if n < 1 || n > 12 {
			return bound{}, next, p.errorAt(argStart, "Invalid Month")
		}

		if day < 1 || day > daysInMonth(n) {
			return bound{}, next, p.errorAt(argStart, "Invalid Date")
		}

		return bound{date: Date{Month: n, Day: day}, isDate: true, tok: tok}, next, nil
	}

	return bound{num: n, tok: tok}, i, nil
}

// parseSignedNumber consumes an optional leading '-' and a numeric token.
func (p *parser) parseSignedNumber(idx int) (int, int, error) {
	i := idx
	if i >= len(p.tokens) {
		return 0, i, p.errorAt(p.endToken(), "unexpected end of format string")
	}

	neg := false
	if p.tokens[i].is("-") {
		neg = true

		i++
		if i >= len(p.tokens) {
			return 0, i, p.errorAt(p.endToken(), "unexpected end of format string")
		}
	}

	tok := p.tokens[i]
	if !tok.IsNumeric() {
		return 0, i, p.errorAt(tok, "expected a number, found %q", tok.Value)
	}

	n, err := strconv.Atoi(tok.Value)
	if err != nil {
		return 0, i, p.errorAt(tok, "number %q out of range", tok.Value)
	}

	if neg {
		n = -n
	}

	return n, i + 1, nil
}
