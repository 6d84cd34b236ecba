package services

import (
	"context"
	"fmt"
	"sync"

	"nightlife-booking-platform/internal/models"
)

// SyncedTicketStore mirrors every mutation to the booking store before
// committing it locally. A failed remote call leaves the ticket untouched.
type SyncedTicketStore struct {
	mu      sync.Mutex
	items   []models.TicketItem
	keyMode models.KeyMode
	syncer  BookingSyncer
}

// NewSyncedTicketStore creates an empty ticket backed by the given syncer.
// Call RefreshTickets to load existing bookings.
func NewSyncedTicketStore(syncer BookingSyncer, keyMode models.KeyMode) *SyncedTicketStore {
	return &SyncedTicketStore{
		keyMode: keyMode,
		syncer:  syncer,
	}
}

// Tickets returns a copy of the line items in insertion order
func (s *SyncedTicketStore) Tickets() []models.TicketItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// Summary returns the ticket totals
func (s *SyncedTicketStore) Summary() models.TicketSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Summarize(s.items)
}

// AddTicket stores the request remotely, then merges or appends it locally
func (s *SyncedTicketStore) AddTicket(ctx context.Context, req models.TicketRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexByKey(s.items, s.keyMode, req.Key(s.keyMode)); i >= 0 {
		merged := mergeRequest(s.items[i], req, s.keyMode)
		if merged == s.items[i] {
			return nil
		}
		if err := s.syncer.UpdateCounts(ctx, merged); err != nil {
			return err
		}
		s.items[i] = merged
		return nil
	}

	if req.IsEmpty() {
		return nil
	}

	created, err := s.syncer.Create(ctx, req)
	if err != nil {
		return err
	}
	s.items = append(s.items, created)
	return nil
}

// RemoveTicket deletes the booking remotely, then drops the local item
func (s *SyncedTicketStore) RemoveTicket(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, itemID)
}

func (s *SyncedTicketStore) removeLocked(ctx context.Context, itemID string) error {
	i := indexByID(s.items, itemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrTicketNotFound, itemID)
	}

	if err := s.syncer.Delete(ctx, s.items[i]); err != nil {
		return err
	}
	s.items = removeAt(s.items, i)
	return nil
}

// UpdateTicketCount pushes the new headcounts remotely, then commits them.
// When both counts reach zero the item is removed instead.
func (s *SyncedTicketStore) UpdateTicketCount(ctx context.Context, itemID string, gender models.Gender, increment bool) error {
	if !gender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", models.ErrInvalidInput, gender)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.items, itemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrTicketNotFound, itemID)
	}

	updated, collapse := applyCountChange(s.items[i], gender, increment)
	if collapse {
		return s.removeLocked(ctx, itemID)
	}
	if updated == s.items[i] {
		return nil
	}

	if err := s.syncer.UpdateCounts(ctx, updated); err != nil {
		return err
	}
	s.items[i] = updated
	return nil
}

// ClearAllTickets deletes every booking of the session, then empties the ticket
func (s *SyncedTicketStore) ClearAllTickets(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncer.Clear(ctx); err != nil {
		return err
	}
	s.items = nil
	return nil
}

// RefreshTickets replaces the local ticket with the stored bookings.
// On failure the current items are kept.
func (s *SyncedTicketStore) RefreshTickets(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.syncer.Fetch(ctx)
	if err != nil {
		return err
	}
	s.items = items
	return nil
}
