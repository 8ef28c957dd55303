package sch

// Node is one element of the parsed syntax tree: either a nested
// *Expression or a literal *Argument. The compiler switches exhaustively
// over the two variants.
type Node interface {
	// FirstToken anchors diagnostics to the source position where the node
	// began.
	FirstToken() Token
}

// Expression is a named construct of the form name(arg, arg, ...): a time
// field such as hour(9-17) or the group(...) container. Built once by the
// parser and read-only afterward.
type Expression struct {
	Name  string
	Args  []Node
	First Token
}

// FirstToken returns the expression's name token.
func (e *Expression) FirstToken() Token { return e.First }

// ArgKind discriminates the literal argument variants.
type ArgKind int

const (
	ArgNumber ArgKind = iota
	ArgRange
	ArgDays
	ArgDates
	ArgWildcard
)

// String returns the argument kind name, for diagnostics and logging.
func (k ArgKind) String() string {
	switch k {
	case ArgNumber:
		return "number"
	case ArgRange:
		return "range"
	case ArgDays:
		return "days"
	case ArgDates:
		return "dates"
	case ArgWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Date is a calendar month/day pair. Months are 1-based in the syntax tree
// and shifted to 0-based during compilation.
type Date struct {
	Month int
	Day   int
}

// Argument is one literal operand of a field expression. Which value fields
// are meaningful depends on Kind: Number for ArgNumber, Low/High for
// ArgRange and ArgDays, LowDate/HighDate for ArgDates, none for
// ArgWildcard.
type Argument struct {
	Kind ArgKind

	Number    int
	Low, High int
	LowDate   Date
	HighDate  Date
	Ranged    bool // an explicit '-' second bound was written

	Exclude    bool // subtracts from the field's allowed set
	Modulus    int
	HasModulus bool

	First Token
}

// FirstToken returns the token the argument began at (the '!' when the
// argument is excluded).
func (a *Argument) FirstToken() Token { return a.First }
