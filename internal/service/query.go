package service

import (
	"time"

	"eventbot/internal/dateparse"
	"eventbot/internal/model"
)

// BuildFilter translates a parsed intent into a catalog filter. Pure
// function: the same intent and clock always produce the same filter.
func BuildFilter(intent *model.ParsedIntent, now time.Time) *model.EventFilter {
	f := &model.EventFilter{}
	if intent == nil {
		return f
	}

	switch intent.Kind {
	case model.KindByDate:
		r := resolveAnyDate(intent, now)
		if r == nil {
			f.None = true
			break
		}
		applyInterval(f, r)

	case model.KindByDateRange:
		start := resolveField(intent.DateStart, now)
		end := resolveField(intent.DateEnd, now)
		switch {
		case start != nil && end != nil:
			from := start.Time
			before := end.UpperBound()
			f.StartFrom = &from
			f.StartBefore = &before
		case start != nil:
			if start.Granularity == dateparse.GranularityMonth {
				applyInterval(f, start)
			} else {
				from := start.Time
				f.StartFrom = &from
			}
		case end != nil:
			before := end.UpperBound()
			f.StartBefore = &before
		default:
			f.None = true
		}

	case model.KindByCategory:
		if intent.Category != nil {
			cat := *intent.Category
			f.Category = &cat
		}

	case model.KindByLocation:
		if intent.Location != nil {
			loc := *intent.Location
			f.LocationContains = &loc
		}

	case model.KindFreeOnly:
		f.FreeOnly = true

	case model.KindUpcoming:
		days := 7
		if intent.UpcomingDays != nil && *intent.UpcomingDays > 0 {
			days = *intent.UpcomingDays
		}
		from := now
		upTo := now.AddDate(0, 0, days)
		f.StartFrom = &from
		f.StartUpTo = &upTo

	case model.KindSearch:
		if intent.SearchText != nil && *intent.SearchText != "" {
			if r := dateparse.ScanText(*intent.SearchText, now); r != nil {
				applyInterval(f, r)
			} else {
				text := *intent.SearchText
				f.TextContains = &text
			}
		}

	case model.KindRecommendation:
		// Recommendations draw from the full active catalog, not a query.
		f.None = true
	}

	if intent.FreeOnly != nil && *intent.FreeOnly {
		f.FreeOnly = true
	}
	if intent.PriceCeiling != nil {
		ceiling := *intent.PriceCeiling
		f.PriceCeiling = &ceiling
	}

	return f
}

// resolveAnyDate tries the date field, then the range start, then a scan of
// the free search text, so a model that put the date in the wrong slot still
// gets a dated query.
func resolveAnyDate(intent *model.ParsedIntent, now time.Time) *dateparse.Resolved {
	if r := resolveField(intent.Date, now); r != nil {
		return r
	}
	if r := resolveField(intent.DateStart, now); r != nil {
		return r
	}
	if intent.SearchText != nil {
		return dateparse.ScanText(*intent.SearchText, now)
	}
	return nil
}

func resolveField(field *string, now time.Time) *dateparse.Resolved {
	if field == nil || *field == "" {
		return nil
	}
	return dateparse.Resolve(*field, now)
}

// applyInterval turns a resolved date into the half-open interval covering
// its day or month.
func applyInterval(f *model.EventFilter, r *dateparse.Resolved) {
	from := r.Time
	before := r.UpperBound()
	f.StartFrom = &from
	f.StartBefore = &before
}
