package dateparse

import (
	"regexp"
	"strings"
	"time"

	"eventbot/internal/utils"
)

var (
	reScanDayMonth  = regexp.MustCompile(`(\d{1,2})\s+de\s+([a-z]+)(?:\s+de)?\s*(\d{4})?`)
	reScanMonthYear = regexp.MustCompile(`([a-z]+)\s+(?:de\s+)?(\d{4})`)
	reScanISO       = regexp.MustCompile(`\b(\d{4})-(\d{2})(?:-(\d{2}))?\b`)
	reScanSlash     = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
)

// ScanText looks for a date expression embedded anywhere in free text and
// delegates the matched fragment to Resolve. It is a safety net for search
// queries that smuggle a date the interpreter missed; a structural match ends
// the scan even when the fragment turns out unresolvable, mirroring how the
// patterns take precedence over one another.
func ScanText(text string, now time.Time) *Resolved {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	folded := utils.NormalizeText(strings.ReplaceAll(text, ",", " "))

	if strings.Contains(folded, "hoy") {
		return Resolve("hoy", now)
	}
	if strings.Contains(folded, "manana") {
		return Resolve("manana", now)
	}

	if m := reScanDayMonth.FindStringSubmatch(folded); m != nil {
		expr := strings.TrimSpace(m[1] + " de " + m[2] + " " + m[3])
		return Resolve(expr, now)
	}
	if m := reScanMonthYear.FindStringSubmatch(folded); m != nil {
		return Resolve(m[1]+" "+m[2], now)
	}
	for _, name := range monthNameOrder {
		if strings.Contains(folded, name) {
			return Resolve(name, now)
		}
	}
	if m := reScanISO.FindStringSubmatch(folded); m != nil {
		if m[3] != "" {
			return Resolve(m[1]+"-"+m[2]+"-"+m[3], now)
		}
		return Resolve(m[1]+"-"+m[2], now)
	}
	if m := reScanSlash.FindStringSubmatch(folded); m != nil {
		return Resolve(m[0], now)
	}
	return nil
}
