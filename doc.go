// Package sch compiles compact schedule expressions into normalized,
// range-based rule groups.
//
// An expression names one or more time fields and constrains each with
// numbers, ranges, weekday names, calendar dates, wildcards, exclusions,
// and step qualifiers:
//
//	hour(9-17), m(0%15)          every 15 minutes, 9am through 5pm
//	day(FRI-MON), h(12)          noon on weekend days (wrapping the week)
//	date(11/15-2/1)              midnight, Nov 15 through Feb 1 (wrapping the year)
//	group(h(9)), group(h(18))    two independent schedules
//
// Compile returns one RuleGroup per schedule alternative. A RuleGroup is an
// in-memory set of allowed (and excluded) ranges per field, meant for a
// downstream next-occurrence engine; this package performs no time
// arithmetic, timezone handling, or serialization itself.
//
// Cross-cutting concerns live in subpackages: log defines the structured
// logging facade, zap adapts it to go.uber.org/zap, and assert provides
// invariant checks for internal use.
package sch
