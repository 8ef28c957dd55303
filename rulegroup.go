package sch

import (
	"fmt"
	"strings"
)

// Range is a normalized (low, high) bound pair for one field. When Split is
// true the logical range wraps the field's domain boundary and must be read
// as [low, max] plus [min, high]. A Modulus of 0 means no step qualifier.
type Range struct {
	Low     int
	High    int
	Split   bool
	Modulus int
}

// String renders the range in source-like notation, for debugging only.
func (r Range) String() string {
	s := fmt.Sprintf("%d", r.Low)
	if r.High != r.Low {
		s = fmt.Sprintf("%d-%d", r.Low, r.High)
	}

	if r.Modulus != 0 {
		s += fmt.Sprintf("%%%d", r.Modulus)
	}

	return s
}

// DateRange is a normalized calendar range. Months are 0-based. Split marks
// a range that wraps the year boundary.
type DateRange struct {
	Low     Date
	High    Date
	Split   bool
	Modulus int
}

// String renders the range in source-like month/day notation with 1-based
// months, for debugging only.
func (r DateRange) String() string {
	s := fmt.Sprintf("%d/%d", r.Low.Month+1, r.Low.Day)
	if r.High != r.Low {
		s += fmt.Sprintf("-%d/%d", r.High.Month+1, r.High.Day)
	}

	if r.Modulus != 0 {
		s += fmt.Sprintf("%%%d", r.Modulus)
	}

	return s
}

// RuleGroup is one compiled, independent set of field constraints: the
// ordered allowed ranges per field plus a parallel exclude list per field.
// Fields left nil are unconstrained. Day-of-week values are 0-based with
// Monday=0.
//
// HasDates is set when the group contained a bare date() expression: the
// dates dimension was mentioned but left unconstrained, and no DateRange is
// recorded. Consumers should treat an empty Dates list as "any date" either
// way.
type RuleGroup struct {
	Seconds        []Range
	SecondsExclude []Range

	Minutes        []Range
	MinutesExclude []Range

	Hours        []Range
	HoursExclude []Range

	DaysOfWeek        []Range
	DaysOfWeekExclude []Range

	DaysOfMonth        []Range
	DaysOfMonthExclude []Range

	Dates        []DateRange
	DatesExclude []DateRange

	HasDates bool
}

// rangeLists returns the include and exclude lists for a numerically-ranged
// field. FieldDates is stored separately and never passed here.
func (g *RuleGroup) rangeLists(kind FieldKind) (include, exclude *[]Range) {
	switch kind {
	case FieldSeconds:
		return &g.Seconds, &g.SecondsExclude
	case FieldMinutes:
		return &g.Minutes, &g.MinutesExclude
	case FieldHours:
		return &g.Hours, &g.HoursExclude
	case FieldDaysOfWeek:
		return &g.DaysOfWeek, &g.DaysOfWeekExclude
	case FieldDaysOfMonth:
		return &g.DaysOfMonth, &g.DaysOfMonthExclude
	default:
		return nil, nil
	}
}

// String renders the set fields in source-like notation, for debugging only.
func (g RuleGroup) String() string {
	var parts []string

	appendField := func(name string, include, exclude []Range) {
		if len(include) == 0 && len(exclude) == 0 {
			return
		}

		var args []string
		for _, r := range include {
			args = append(args, r.String())
		}

		for _, r := range exclude {
			args = append(args, "!"+r.String())
		}

		parts = append(parts, fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")))
	}

	appendField("seconds", g.Seconds, g.SecondsExclude)
	appendField("minutes", g.Minutes, g.MinutesExclude)
	appendField("hours", g.Hours, g.HoursExclude)
	appendField("daysOfWeek", g.DaysOfWeek, g.DaysOfWeekExclude)
	appendField("daysOfMonth", g.DaysOfMonth, g.DaysOfMonthExclude)

	if len(g.Dates) > 0 || len(g.DatesExclude) > 0 || g.HasDates {
		var args []string
		for _, r := range g.Dates {
			args = append(args, r.String())
		}

		for _, r := range g.DatesExclude {
			args = append(args, "!"+r.String())
		}

		parts = append(parts, fmt.Sprintf("dates(%s)", strings.Join(args, ", ")))
	}

	return strings.Join(parts, ", ")
}
