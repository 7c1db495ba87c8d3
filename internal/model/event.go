package model

import (
	"fmt"
	"time"

	"eventbot/internal/utils"
)

// Event is a catalog record. The chat core only ever reads events; writes
// happen through the admin surface and the cleanup job.
type Event struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    Category   `json:"category" db:"category"`
	StartsAt    time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	Location    string     `json:"location" db:"location"`
	Address     string     `json:"address" db:"address"`
	Price       float64    `json:"price" db:"price"`
	Contact     string     `json:"contact" db:"contact"`
	Link        string     `json:"link" db:"link"`
	Active      bool       `json:"active" db:"active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsFree is true only for an exact zero price.
func (e *Event) IsFree() bool {
	return e.Price == 0
}

// EventSummary is the card-sized rendering of an event returned to the chat
// client alongside the conversational reply.
type EventSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Price       string `json:"price"`
	Category    string `json:"category"`
}

const summaryDescriptionLimit = 200

// Summary renders e for display in the given local zone.
func (e *Event) Summary(loc *time.Location) EventSummary {
	location := e.Location
	if location == "" {
		location = "Ubicación por confirmar"
	}
	return EventSummary{
		Title:       e.Title,
		Description: utils.TruncateRunes(e.Description, summaryDescriptionLimit),
		Date:        e.StartsAt.In(loc).Format("02/01/2006 15:04"),
		Location:    location,
		Price:       e.PriceLabel(),
		Category:    e.Category.Label(),
	}
}

// PriceLabel formats the price for display, with free events called out.
func (e *Event) PriceLabel() string {
	if e.IsFree() {
		return "Gratis"
	}
	return fmt.Sprintf("$%.2f", e.Price)
}
