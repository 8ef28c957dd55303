package sch

import (
	"context"
	"strings"

	"github.com/rossipedia/sch/assert"
	"github.com/rossipedia/sch/log"
)

// compiler walks a parsed document and assembles rule groups. One compiler
// instance serves a single compilation.
type compiler struct {
	source string
	logger log.Logger
}

func (c *compiler) errorAt(tok Token, format string, args ...any) error {
	return newParseError(c.source, tok, format, args...)
}

// fieldPresence records which fields a group set explicitly, captured
// before implied defaults are applied.
type fieldPresence struct {
	seconds   bool
	minutes   bool
	hours     bool
	dateLevel bool // day-of-week, day-of-month, or dates
}

func (fp *fieldPresence) mark(kind FieldKind) {
	switch kind {
	case FieldSeconds:
		fp.seconds = true
	case FieldMinutes:
		fp.minutes = true
	case FieldHours:
		fp.hours = true
	case FieldDaysOfWeek, FieldDaysOfMonth, FieldDates:
		fp.dateLevel = true
	}
}

func (fp fieldPresence) any() bool {
	return fp.seconds || fp.minutes || fp.hours || fp.dateLevel
}

// compile produces the ordered rule groups for a document: one group per
// explicit group(...) in source order, then a single implicit group
// collecting every remaining top-level expression.
func (c *compiler) compile(doc []*Expression) ([]RuleGroup, error) {
	var groups []RuleGroup

	var implicit []*Expression

	for _, expr := range doc {
		if strings.EqualFold(expr.Name, keywordGroup) {
			group, err := c.compileGroup(expr)
			if err != nil {
				return nil, err
			}

			groups = append(groups, group)

			continue
		}

		implicit = append(implicit, expr)
	}

	if len(implicit) > 0 {
		group, err := c.compileExpressions(implicit, implicit[0].First)
		if err != nil {
			return nil, err
		}

		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil, c.errorAt(Token{}, "no rules in schedule")
	}

	c.logger.Log(context.Background(), log.LevelDebug, "compiled schedule",
		log.Int("groups", len(groups)))

	return groups, nil
}

// compileGroup compiles one explicit group(...) node. Its arguments must
// themselves be field expressions; further group nesting is rejected.
func (c *compiler) compileGroup(expr *Expression) (RuleGroup, error) {
	subs := make([]*Expression, 0, len(expr.Args))

	for _, node := range expr.Args {
		sub, ok := node.(*Expression)
		if !ok {
			return RuleGroup{}, c.errorAt(node.FirstToken(), "expected an expression")
		}

		if strings.EqualFold(sub.Name, keywordGroup) {
			return RuleGroup{}, c.errorAt(sub.First, "nested groups are not allowed")
		}

		subs = append(subs, sub)
	}

	return c.compileExpressions(subs, expr.First)
}

// compileExpressions compiles a set of field expressions into one group.
// anchor positions the "no rules" diagnostic when the set resolves empty.
func (c *compiler) compileExpressions(exprs []*Expression, anchor Token) (RuleGroup, error) {
	var group RuleGroup

	var present fieldPresence

	for _, expr := range exprs {
		kind, ok := resolveField(expr.Name)
		if !ok {
			return RuleGroup{}, c.errorAt(expr.First, "Unknown expression %s", expr.Name)
		}

		if err := c.compileField(&group, kind, expr); err != nil {
			return RuleGroup{}, err
		}

		present.mark(kind)
	}

	if !present.any() {
		return RuleGroup{}, c.errorAt(anchor, "no rules in schedule")
	}

	c.applyDefaults(&group, present)

	return group, nil
}

// compileField normalizes one field expression's arguments into the group.
// Zero arguments means the full domain for numeric fields; for dates it
// marks the group without constraining anything.
func (c *compiler) compileField(group *RuleGroup, kind FieldKind, expr *Expression) error {
	args := expr.Args

	if len(args) == 0 {
		if kind == FieldDates {
			group.HasDates = true
			return nil
		}

		args = []Node{&Argument{Kind: ArgWildcard, First: expr.First}}
	}

	for _, node := range args {
		arg, ok := node.(*Argument)
		if !ok {
			return c.errorAt(node.FirstToken(), "expected a value, found an expression")
		}

		if err := c.compileArgument(group, kind, arg); err != nil {
			return err
		}
	}

	return nil
}

func (c *compiler) compileArgument(group *RuleGroup, kind FieldKind, arg *Argument) error {
	if kind == FieldDates {
		return c.compileDateArgument(group, arg)
	}

	return c.compileValueArgument(group, kind, arg)
}

// compileDateArgument normalizes one argument of the dates field. Calendar
// validity was already checked during parsing, so no bounds check runs
// here; only the year-wrap split and the modulus sign are decided.
func (c *compiler) compileDateArgument(group *RuleGroup, arg *Argument) error {
	var r DateRange

	switch arg.Kind {
	case ArgWildcard:
		r = DateRange{Low: Date{Month: 0, Day: 1}, High: Date{Month: 11, Day: 31}}
	case ArgDates:
		low := Date{Month: arg.LowDate.Month - 1, Day: arg.LowDate.Day}
		high := Date{Month: arg.HighDate.Month - 1, Day: arg.HighDate.Day}

		// A low bound at or past the high bound wraps the year boundary,
		// e.g. 11/15-2/1 runs November through February.
		split := arg.Ranged &&
			(low.Month > high.Month || (low.Month == high.Month && low.Day >= high.Day))

		r = DateRange{Low: low, High: high, Split: split}
	case ArgNumber, ArgRange, ArgDays:
		return c.errorAt(arg.First, "expected a date")
	default:
		return assert.New(c.logger, "sch", "compileDateArgument").
			Never(context.Background(), "unhandled argument kind", "kind", arg.Kind.String())
	}

	if arg.HasModulus {
		if arg.Modulus < 0 {
			return c.errorAt(arg.First, "modulus cannot be negative")
		}

		r.Modulus = arg.Modulus
	}

	if arg.Exclude {
		group.DatesExclude = append(group.DatesExclude, r)
	} else {
		group.Dates = append(group.Dates, r)
	}

	return nil
}

// compileValueArgument normalizes one argument of a numeric or day-of-week
// field into a bounded Range and appends it to the field's include or
// exclude list.
func (c *compiler) compileValueArgument(group *RuleGroup, kind FieldKind, arg *Argument) error {
	domain := fieldDomains[kind]

	var low, high int

	var split bool

	switch arg.Kind {
	case ArgWildcard:
		low, high = domain.min, domain.max
		if kind == FieldDaysOfMonth {
			low = 1 // 0 is disallowed and negatives count from the month's end
		}
	case ArgNumber:
		low, high = arg.Number, arg.Number
		if arg.HasModulus {
			high = domain.max
		}
	case ArgRange:
		low, high = arg.Low, arg.High
		// A negative high counts from the end of the domain and orders
		// above any non-negative low, so 5 - -1 is not a wrap.
		split = low > high && !(low >= 0 && high < 0)
	case ArgDays:
		if kind != FieldDaysOfWeek {
			return c.errorAt(arg.First, "day names are only valid in a day of week expression")
		}

		low, high = arg.Low, arg.High
		split = high < low

		// FRI%2 means every 2nd day from Friday through the end of the
		// domain.
		if arg.HasModulus && high == low {
			high = domain.max
		}
	case ArgDates:
		return c.errorAt(arg.First, "date values are only valid in a date expression")
	default:
		return assert.New(c.logger, "sch", "compileValueArgument").
			Never(context.Background(), "unhandled argument kind", "kind", arg.Kind.String())
	}

	if low < domain.min || high < domain.min {
		return c.errorAt(arg.First, "Minimum value for %s is %d", kind, domain.min)
	}

	if low > domain.max || high > domain.max {
		return c.errorAt(arg.First, "Maximum value for %s is %d", kind, domain.max)
	}

	if kind == FieldDaysOfMonth && (low == 0 || high == 0) {
		return c.errorAt(arg.First, "day of month cannot be zero")
	}

	if kind == FieldDaysOfWeek {
		// shift to the 0-based internal representation, Monday=0
		low--
		high--
	}

	if arg.HasModulus && arg.Modulus < 0 {
		return c.errorAt(arg.First, "modulus cannot be negative")
	}

	r := Range{Low: low, High: high, Split: split}
	if arg.HasModulus {
		r.Modulus = arg.Modulus
	}

	include, exclude := group.rangeLists(kind)

	if arg.Exclude {
		*exclude = append(*exclude, r)
	} else {
		*include = append(*include, r)
	}

	return nil
}

// applyDefaults fills the fields finer than the coarsest explicit one with
// a zero range, so date(1/1) alone means midnight on January 1st and
// hour(9) means 9:00:00 sharp.
func (c *compiler) applyDefaults(group *RuleGroup, present fieldPresence) {
	defaulted := false

	if !present.seconds && (present.minutes || present.hours || present.dateLevel) {
		group.Seconds = []Range{{Low: 0, High: 0}}
		defaulted = true
	}

	if !present.seconds && !present.minutes && (present.hours || present.dateLevel) {
		group.Minutes = []Range{{Low: 0, High: 0}}
		defaulted = true
	}

	if !present.seconds && !present.minutes && !present.hours && present.dateLevel {
		group.Hours = []Range{{Low: 0, High: 0}}
		defaulted = true
	}

	if defaulted {
		c.logger.Log(context.Background(), log.LevelDebug, "applied implied field defaults",
			log.Bool("seconds", len(group.Seconds) > 0 && !present.seconds),
			log.Bool("minutes", len(group.Minutes) > 0 && !present.minutes),
			log.Bool("hours", len(group.Hours) > 0 && !present.hours))
	}
}
