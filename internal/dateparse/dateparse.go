// Package dateparse resolves natural-language Spanish date expressions into
// concrete, timezone-aware intervals. It is pure: the reference instant is
// always passed in, never read from the process clock.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventbot/internal/utils"
)

// Granularity says whether a resolved expression names a single day or a
// whole month. It decides the width of the derived half-open interval.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// Resolved is a date expression anchored at local midnight plus its
// granularity.
type Resolved struct {
	Time        time.Time
	Granularity Granularity
}

// UpperBound returns the exclusive end of the interval starting at r.Time:
// the next day for day granularity, the first day of the following month for
// month granularity (December rolls over into January).
func (r Resolved) UpperBound() time.Time {
	if r.Granularity == GranularityMonth {
		return time.Date(r.Time.Year(), r.Time.Month()+1, 1, 0, 0, 0, 0, r.Time.Location())
	}
	return r.Time.AddDate(0, 0, 1)
}

// monthNames maps normalized Spanish month names to months. "setiembre" is a
// common regional spelling of September.
var monthNames = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// monthNameOrder fixes the scan order for bare month detection.
var monthNameOrder = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
	"agosto", "septiembre", "setiembre", "octubre", "noviembre", "diciembre",
}

var (
	reISODate      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reYearMonth    = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	reMonthYear    = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	reDayMonthYear = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	// "[D de] MES [de] [AÑO]" over already-normalized text.
	reNamedMonth = regexp.MustCompile(`^(?:(\d{1,2})\s+de\s+)?([a-z]+)(?:\s+de)?\s*(\d{4})?$`)
)

// Resolve parses a single date expression relative to now. The returned
// instant is midnight in now's location. Unparseable input yields nil, never
// an error.
func Resolve(text string, now time.Time) *Resolved {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	loc := now.Location()
	folded := utils.NormalizeText(s)

	switch folded {
	case "hoy":
		return &Resolved{Time: midnight(now), Granularity: GranularityDay}
	case "manana":
		return &Resolved{Time: midnight(now).AddDate(0, 0, 1), Granularity: GranularityDay}
	}

	if m := reISODate.FindStringSubmatch(s); m != nil {
		return calendarDay(atoi(m[1]), atoi(m[2]), atoi(m[3]), loc)
	}

	// ISO with a time component truncates to that calendar day.
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &Resolved{Time: midnight(t.In(loc)), Granularity: GranularityDay}
		}
	}

	if m := reYearMonth.FindStringSubmatch(s); m != nil {
		return calendarMonth(atoi(m[1]), atoi(m[2]), loc)
	}
	if m := reMonthYear.FindStringSubmatch(s); m != nil {
		return calendarMonth(atoi(m[2]), atoi(m[1]), loc)
	}
	if m := reDayMonthYear.FindStringSubmatch(s); m != nil {
		return calendarDay(atoi(m[3]), atoi(m[2]), atoi(m[1]), loc)
	}

	if m := reNamedMonth.FindStringSubmatch(folded); m != nil {
		month, ok := monthNames[m[2]]
		if !ok {
			return nil
		}
		year := now.Year()
		if m[3] != "" {
			year = atoi(m[3])
		}
		if m[1] == "" {
			return calendarMonth(year, int(month), loc)
		}
		return calendarDay(year, int(month), atoi(m[1]), loc)
	}

	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// calendarDay builds a day-granularity result, rejecting impossible dates
// (time.Date silently normalizes overflow, so round-trip the components).
func calendarDay(year, month, day int, loc *time.Location) *Resolved {
	if month < 1 || month > 12 || day < 1 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return nil
	}
	return &Resolved{Time: t, Granularity: GranularityDay}
}

func calendarMonth(year, month int, loc *time.Location) *Resolved {
	if month < 1 || month > 12 {
		return nil
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return &Resolved{Time: t, Granularity: GranularityMonth}
}
