package sch

import "strings"

// FieldKind identifies one canonical schedule field. Every accepted
// expression name resolves to exactly one kind; bounds and domain rules are
// attached here as data rather than re-derived per call site.
type FieldKind int

const (
	FieldSeconds FieldKind = iota
	FieldMinutes
	FieldHours
	FieldDaysOfWeek
	FieldDaysOfMonth
	FieldDates
)

// String returns the human-readable field name used in diagnostics.
func (k FieldKind) String() string {
	switch k {
	case FieldSeconds:
		return "seconds"
	case FieldMinutes:
		return "minutes"
	case FieldHours:
		return "hours"
	case FieldDaysOfWeek:
		return "day of week"
	case FieldDaysOfMonth:
		return "day of month"
	case FieldDates:
		return "dates"
	default:
		return "unknown"
	}
}

// fieldBounds is the inclusive domain of a field. The dates field has no
// entry: it is calendar-validated during parsing and never reaches the
// generic bounds check.
type fieldBounds struct {
	min, max int
}

var fieldDomains = map[FieldKind]fieldBounds{
	FieldSeconds:     {min: 0, max: 59},
	FieldMinutes:     {min: 0, max: 59},
	FieldHours:       {min: 0, max: 23},
	FieldDaysOfWeek:  {min: 1, max: 7},
	FieldDaysOfMonth: {min: -31, max: 31}, // negatives count from the end of the month
}

// keywordGroup opens an independent rule group instead of a time field.
const keywordGroup = "group"

// fieldAliases maps every accepted expression name, lowercased, to its
// canonical field.
var fieldAliases = map[string]FieldKind{
	"s":               FieldSeconds,
	"sec":             FieldSeconds,
	"second":          FieldSeconds,
	"seconds":         FieldSeconds,
	"secondofminute":  FieldSeconds,
	"secondsofminute": FieldSeconds,

	"m":             FieldMinutes,
	"min":           FieldMinutes,
	"minute":        FieldMinutes,
	"minutes":       FieldMinutes,
	"minuteofhour":  FieldMinutes,
	"minutesofhour": FieldMinutes,

	"h":          FieldHours,
	"hour":       FieldHours,
	"hours":      FieldHours,
	"hourofday":  FieldHours,
	"hoursofday": FieldHours,

	"day":        FieldDaysOfWeek,
	"days":       FieldDaysOfWeek,
	"dow":        FieldDaysOfWeek,
	"dayofweek":  FieldDaysOfWeek,
	"daysofweek": FieldDaysOfWeek,

	"dom":         FieldDaysOfMonth,
	"dayofmonth":  FieldDaysOfMonth,
	"daysofmonth": FieldDaysOfMonth,

	"date":  FieldDates,
	"dates": FieldDates,
}

// resolveField maps an expression name to its canonical field,
// case-insensitively.
func resolveField(name string) (FieldKind, bool) {
	kind, ok := fieldAliases[strings.ToLower(name)]
	return kind, ok
}

// dayOrdinals maps weekday names to their 1-7 ordinal, Monday first. Both
// three-letter abbreviations and full names are accepted.
var dayOrdinals = map[string]int{
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"sun": 7, "sunday": 7,
}

// daysInMonth returns the day count of a 1-based month. February reports 29
// so leap-day schedules validate.
func daysInMonth(month int) int {
	switch month {
	case 2:
		return 29
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
