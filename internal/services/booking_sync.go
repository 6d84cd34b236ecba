package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"nightlife-booking-platform/internal/models"
)

// BookingSyncAdapter maps ticket items to bookings of one session. It holds
// no ticket state of its own.
type BookingSyncAdapter struct {
	bookings BookingRepositoryInterface
	session  *models.Session
	now      func() time.Time
}

// NewBookingSyncAdapter creates an adapter acting on behalf of session
func NewBookingSyncAdapter(bookings BookingRepositoryInterface, session *models.Session) *BookingSyncAdapter {
	return &BookingSyncAdapter{
		bookings: bookings,
		session:  session,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for session expiry checks
func (a *BookingSyncAdapter) WithClock(now func() time.Time) *BookingSyncAdapter {
	a.now = now
	return a
}

// Create stores a new booking and returns the committed line item
func (a *BookingSyncAdapter) Create(ctx context.Context, req models.TicketRequest) (models.TicketItem, error) {
	sessionID, err := a.sessionID()
	if err != nil {
		return models.TicketItem{}, err
	}

	clubID, err := clubIDFromVenue(req.VenueKey)
	if err != nil {
		return models.TicketItem{}, err
	}

	booking, err := a.bookings.Create(ctx, sessionID, &models.BookingCreateRequest{
		ClubID:     clubID,
		Date:       req.Date,
		MenCount:   req.Men,
		WomenCount: req.Women,
		UnitPrice:  req.UnitPrice,
		TotalPrice: models.ComputeTotalPrice(req.Men, req.Women, req.UnitPrice),
	})
	if err != nil {
		log.Printf("Failed to create booking for club %d on %s: %v", clubID, req.Date, err)
		return models.TicketItem{}, &models.RemoteError{Op: "create booking", Err: err}
	}

	item := req.NewItem(strconv.FormatInt(booking.ID, 10))
	item.BackendID = booking.ID
	item.Status = booking.Status
	log.Printf("Booking %d created for club %d on %s", booking.ID, clubID, req.Date)
	return item, nil
}

// UpdateCounts pushes the item's date, headcounts and price
func (a *BookingSyncAdapter) UpdateCounts(ctx context.Context, item models.TicketItem) error {
	sessionID, err := a.sessionID()
	if err != nil {
		return err
	}
	if item.BackendID == 0 {
		return fmt.Errorf("%w: item %s has no booking id", models.ErrTicketNotFound, item.ID)
	}

	if _, err := a.bookings.Update(ctx, sessionID, item.BackendID, &models.BookingUpdateRequest{
		Date:       item.Date,
		MenCount:   item.Men,
		WomenCount: item.Women,
		TotalPrice: item.TotalPrice,
	}); err != nil {
		log.Printf("Failed to update booking %d: %v", item.BackendID, err)
		return &models.RemoteError{Op: "update booking", Err: err}
	}
	return nil
}

// Delete removes the item's booking
func (a *BookingSyncAdapter) Delete(ctx context.Context, item models.TicketItem) error {
	sessionID, err := a.sessionID()
	if err != nil {
		return err
	}
	if item.BackendID == 0 {
		return fmt.Errorf("%w: item %s has no booking id", models.ErrTicketNotFound, item.ID)
	}

	if err := a.bookings.Delete(ctx, sessionID, item.BackendID); err != nil {
		log.Printf("Failed to delete booking %d: %v", item.BackendID, err)
		return &models.RemoteError{Op: "delete booking", Err: err}
	}
	return nil
}

// Clear removes every booking of the session
func (a *BookingSyncAdapter) Clear(ctx context.Context) error {
	sessionID, err := a.sessionID()
	if err != nil {
		return err
	}

	if err := a.bookings.DeleteAllBySession(ctx, sessionID); err != nil {
		log.Printf("Failed to clear bookings: %v", err)
		return &models.RemoteError{Op: "clear bookings", Err: err}
	}
	return nil
}

// Fetch loads the session's bookings as line items
func (a *BookingSyncAdapter) Fetch(ctx context.Context) ([]models.TicketItem, error) {
	sessionID, err := a.sessionID()
	if err != nil {
		return nil, err
	}

	bookings, err := a.bookings.ListBySession(ctx, sessionID)
	if err != nil {
		log.Printf("Failed to fetch bookings: %v", err)
		return nil, &models.RemoteError{Op: "fetch bookings", Err: err}
	}

	items := make([]models.TicketItem, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, booking.ToTicketItem())
	}
	return items, nil
}

func (a *BookingSyncAdapter) sessionID() (string, error) {
	if err := a.session.Check(a.now()); err != nil {
		if errors.Is(err, models.ErrNoActiveSession) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", models.ErrNoActiveSession, err)
	}
	return a.session.ID, nil
}

func clubIDFromVenue(venue string) (int, error) {
	id, err := strconv.Atoi(venue)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: venue %q is not a club id", models.ErrInvalidInput, venue)
	}
	return id, nil
}
