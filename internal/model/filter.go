package model

import "time"

// EventFilter is the executable form of a ParsedIntent: a conjunction of
// predicates over active catalog events. Nil pointer fields add no
// constraint.
type EventFilter struct {
	// None short-circuits the query to an empty result. Set when a date
	// query could not be resolved to any interval.
	None bool

	StartFrom   *time.Time // starts_at >= (inclusive)
	StartBefore *time.Time // starts_at <  (exclusive half-open bound)
	StartUpTo   *time.Time // starts_at <= (inclusive, upcoming window)

	Category         *Category
	LocationContains *string // substring over location or address
	TextContains     *string // substring over title, description or location

	FreeOnly bool
	// PriceCeiling admits free events regardless: price = 0 OR price <= ceiling.
	PriceCeiling *float64
}
