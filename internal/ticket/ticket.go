// Package ticket holds the core domain types shared across the pipeline.
package ticket

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the closed classification assigned to a ticket.
type Category string

const (
	CategoryTechnical Category = "TECHNICAL"
	CategoryBilling   Category = "BILLING"
	CategoryGeneral   Category = "GENERAL"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryBilling, CategoryGeneral}
}

// ParseCategory normalizes a raw label to a known Category. Matching is
// case-insensitive and tolerant of surrounding whitespace; anything
// unrecognized maps to GENERAL with ok=false.
func ParseCategory(label string) (Category, bool) {
	switch Category(strings.ToUpper(strings.TrimSpace(label))) {
	case CategoryTechnical:
		return CategoryTechnical, true
	case CategoryBilling:
		return CategoryBilling, true
	case CategoryGeneral:
		return CategoryGeneral, true
	}
	return CategoryGeneral, false
}

// Ticket is one customer support request. Immutable once created.
type Ticket struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a Ticket with a fresh ID and the current timestamp.
func New(text string) Ticket {
	return Ticket{
		ID:        "TICKET-" + uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
