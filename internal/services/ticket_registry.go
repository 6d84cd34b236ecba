package services

import (
	"context"
	"log"
	"sync"
	"time"

	"nightlife-booking-platform/internal/models"
)

type registryEntry struct {
	session *models.Session
	store   *SyncedTicketStore
}

// TicketRegistry keeps one synced ticket per live session
type TicketRegistry struct {
	mu       sync.Mutex
	entries  map[string]registryEntry
	bookings BookingRepositoryInterface
	keyMode  models.KeyMode
	now      func() time.Time
}

// NewTicketRegistry creates a registry over the booking repository
func NewTicketRegistry(bookings BookingRepositoryInterface, keyMode models.KeyMode) *TicketRegistry {
	return &TicketRegistry{
		entries:  make(map[string]registryEntry),
		bookings: bookings,
		keyMode:  keyMode,
		now:      time.Now,
	}
}

// StoreFor returns the session's ticket, loading its bookings on first use.
// An invalid session drops whatever was cached for it.
func (r *TicketRegistry) StoreFor(ctx context.Context, session *models.Session) (*SyncedTicketStore, error) {
	if err := session.Check(r.now()); err != nil {
		if session != nil {
			r.Forget(session.ID)
		}
		return nil, err
	}

	if store, ok := r.cached(session.ID); ok {
		return store, nil
	}

	// Loading happens outside the lock; concurrent first loads of the same
	// session are reads and the first one inserted wins.
	adapter := NewBookingSyncAdapter(r.bookings, session).WithClock(r.now)
	store := NewSyncedTicketStore(adapter, r.keyMode)
	if err := store.RefreshTickets(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[session.ID]; ok {
		return entry.store, nil
	}
	r.entries[session.ID] = registryEntry{session: session, store: store}
	return store, nil
}

func (r *TicketRegistry) cached(sessionID string) (*SyncedTicketStore, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[sessionID]
	return entry.store, ok
}

// Forget drops the cached ticket of a session
func (r *TicketRegistry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Sweep drops the tickets of expired sessions and returns how many it removed
func (r *TicketRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, entry := range r.entries {
		if entry.session.Check(now) != nil {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (r *TicketRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				log.Printf("Dropped %d expired ticket sessions", removed)
			}
		}
	}
}

// Len returns the number of cached tickets
func (r *TicketRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
