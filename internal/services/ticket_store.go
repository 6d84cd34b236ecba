package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nightlife-booking-platform/internal/models"
)

// LocalTicketStore keeps the ticket in memory only. Its operations never
// fail except on invalid input; unknown item ids are ignored.
type LocalTicketStore struct {
	mu      sync.Mutex
	items   []models.TicketItem
	keyMode models.KeyMode
	now     func() time.Time
}

// NewLocalTicketStore creates an empty in-memory ticket
func NewLocalTicketStore(keyMode models.KeyMode) *LocalTicketStore {
	return &LocalTicketStore{
		keyMode: keyMode,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to synthesize item ids
func (s *LocalTicketStore) WithClock(now func() time.Time) *LocalTicketStore {
	s.now = now
	return s
}

// Tickets returns a copy of the line items in insertion order
func (s *LocalTicketStore) Tickets() []models.TicketItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// Summary returns the ticket totals
func (s *LocalTicketStore) Summary() models.TicketSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Summarize(s.items)
}

// AddTicket merges the request into the item with the same key, or appends a new one
func (s *LocalTicketStore) AddTicket(ctx context.Context, req models.TicketRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexByKey(s.items, s.keyMode, req.Key(s.keyMode)); i >= 0 {
		s.items[i] = mergeRequest(s.items[i], req, s.keyMode)
		return nil
	}

	if req.IsEmpty() {
		return nil
	}

	s.items = append(s.items, req.NewItem(s.newID(req)))
	return nil
}

// RemoveTicket drops the item with the given id, if present
func (s *LocalTicketStore) RemoveTicket(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexByID(s.items, itemID); i >= 0 {
		s.items = removeAt(s.items, i)
	}
	return nil
}

// UpdateTicketCount adds or removes one person of the given gender
func (s *LocalTicketStore) UpdateTicketCount(ctx context.Context, itemID string, gender models.Gender, increment bool) error {
	if !gender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", models.ErrInvalidInput, gender)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.items, itemID)
	if i < 0 {
		return nil
	}

	updated, collapse := applyCountChange(s.items[i], gender, increment)
	if collapse {
		s.items = removeAt(s.items, i)
		return nil
	}
	s.items[i] = updated
	return nil
}

// ClearAllTickets empties the ticket
func (s *LocalTicketStore) ClearAllTickets(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

func (s *LocalTicketStore) newID(req models.TicketRequest) string {
	return fmt.Sprintf("%s-%s-%d", req.VenueKey, req.Date, s.now().UnixNano())
}

// mergeRequest sums the request headcounts into the existing item. The
// item keeps its unit price; in venue-only mode the latest date wins.
func mergeRequest(item models.TicketItem, req models.TicketRequest, mode models.KeyMode) models.TicketItem {
	item.Men += req.Men
	item.Women += req.Women
	if mode == models.KeyVenue {
		item.Date = req.Date
	}
	item.Recalculate()
	return item
}

// applyCountChange returns the item after a +/- on one gender. collapse is
// true when both counts end at zero and the item must be removed instead.
func applyCountChange(item models.TicketItem, gender models.Gender, increment bool) (models.TicketItem, bool) {
	delta := -1
	if increment {
		delta = 1
	}

	newCount := item.Count(gender) + delta
	if newCount < 0 {
		newCount = 0
	}

	if gender == models.GenderMen {
		item.Men = newCount
	} else {
		item.Women = newCount
	}

	if item.Men == 0 && item.Women == 0 {
		return item, true
	}

	item.Recalculate()
	return item, false
}

func indexByKey(items []models.TicketItem, mode models.KeyMode, key string) int {
	for i := range items {
		if items[i].Key(mode) == key {
			return i
		}
	}
	return -1
}

func indexByID(items []models.TicketItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeAt(items []models.TicketItem, i int) []models.TicketItem {
	out := make([]models.TicketItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func copyItems(items []models.TicketItem) []models.TicketItem {
	out := make([]models.TicketItem, len(items))
	copy(out, items)
	return out
}
