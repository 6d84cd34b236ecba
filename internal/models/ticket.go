package models

import (
	"fmt"
	"strings"
)

// DefaultUnitPrice is the per-person price of a standard booking
const DefaultUnitPrice = 1000

// Gender selects which headcount of a ticket item is addressed
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// Valid reports whether the gender is one of the known headcounts
func (g Gender) Valid() bool {
	return g == GenderMen || g == GenderWomen
}

// KeyMode decides which fields identify "the same booking"
type KeyMode string

const (
	// KeyVenueDate keeps one line item per venue and date
	KeyVenueDate KeyMode = "venue_date"
	// KeyVenue keeps one line item per venue regardless of date
	KeyVenue KeyMode = "venue"
)

// ParseKeyMode parses a key mode name, falling back to KeyVenueDate
func ParseKeyMode(s string) KeyMode {
	switch KeyMode(strings.ToLower(strings.TrimSpace(s))) {
	case KeyVenue:
		return KeyVenue
	default:
		return KeyVenueDate
	}
}

// TicketItem is one line item of the ticket
type TicketItem struct {
	ID         string        `json:"id"`
	Venue      string        `json:"venue"`
	Name       string        `json:"name"`
	Location   string        `json:"location,omitempty"`
	Date       string        `json:"date"`
	Men        int           `json:"men"`
	Women      int           `json:"women"`
	UnitPrice  int           `json:"unit_price"`
	TotalPrice int           `json:"total_price"`
	BackendID  int64         `json:"backend_id,omitempty"`
	Status     BookingStatus `json:"status,omitempty"`
}

// Count returns the headcount for the given gender
func (t *TicketItem) Count(g Gender) int {
	if g == GenderWomen {
		return t.Women
	}
	return t.Men
}

// People returns the total headcount of the item
func (t *TicketItem) People() int {
	return t.Men + t.Women
}

// Recalculate sets TotalPrice from the headcounts and unit price
func (t *TicketItem) Recalculate() {
	t.TotalPrice = ComputeTotalPrice(t.Men, t.Women, t.UnitPrice)
}

// Key returns the identifying key of the item under the given mode
func (t *TicketItem) Key(mode KeyMode) string {
	return ticketKey(mode, t.Venue, t.Date)
}

// ComputeTotalPrice returns (men + women) * unitPrice
func ComputeTotalPrice(men, women, unitPrice int) int {
	return (men + women) * unitPrice
}

// TicketRequest asks the store to add people to a venue booking
type TicketRequest struct {
	VenueKey  string `json:"venue"`
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	Date      string `json:"date"`
	Men       int    `json:"men"`
	Women     int    `json:"women"`
	UnitPrice int    `json:"unit_price"`
}

// Key returns the identifying key of the request under the given mode
func (r *TicketRequest) Key(mode KeyMode) string {
	return ticketKey(mode, r.VenueKey, r.Date)
}

// IsEmpty reports whether the request carries no people at all
func (r *TicketRequest) IsEmpty() bool {
	return r.Men == 0 && r.Women == 0
}

// Validate checks the request fields. A request with zero men and zero
// women is valid; the store treats it as a no-op.
func (r *TicketRequest) Validate() error {
	if strings.TrimSpace(r.VenueKey) == "" {
		return fmt.Errorf("%w: venue is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if r.Men < 0 || r.Women < 0 {
		return fmt.Errorf("%w: headcounts cannot be negative", ErrInvalidInput)
	}
	if r.UnitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive", ErrInvalidInput)
	}
	return nil
}

// NewItem builds a fresh line item from the request
func (r *TicketRequest) NewItem(id string) TicketItem {
	item := TicketItem{
		ID:        id,
		Venue:     r.VenueKey,
		Name:      r.Name,
		Location:  r.Location,
		Date:      r.Date,
		Men:       r.Men,
		Women:     r.Women,
		UnitPrice: r.UnitPrice,
	}
	item.Recalculate()
	return item
}

func ticketKey(mode KeyMode, venue, date string) string {
	if mode == KeyVenue {
		return venue
	}
	return venue + "\x00" + date
}
