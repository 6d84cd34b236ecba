package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nightlife-booking-platform/internal/models"
)

// BookingRepository handles booking data operations. Every query is scoped
// to the session that owns the rows.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	b.id, b.club_id, b.booking_date, b.men_count, b.women_count, b.unit_price,
	b.total_price, b.user_session, b.status, COALESCE(c.name, ''), COALESCE(c.location, ''),
	b.created_at, b.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.ClubID,
		&booking.BookingDate,
		&booking.MenCount,
		&booking.WomenCount,
		&booking.UnitPrice,
		&booking.TotalPrice,
		&booking.UserSession,
		&booking.Status,
		&booking.ClubName,
		&booking.ClubLocation,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Create inserts a pending booking for the session
func (r *BookingRepository) Create(ctx context.Context, sessionID string, req *models.BookingCreateRequest) (*models.Booking, error) {
	if sessionID == "" {
		return nil, models.ErrNoActiveSession
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		WITH b AS (
			INSERT INTO bookings (club_id, booking_date, men_count, women_count, unit_price, total_price, user_session, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING *
		)
		SELECT` + bookingColumns + `
		FROM b
		LEFT JOIN clubs c ON c.id = b.club_id`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query,
		req.ClubID,
		req.Date,
		req.MenCount,
		req.WomenCount,
		req.UnitPrice,
		req.TotalPrice,
		sessionID,
		models.BookingPending,
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// ListBySession returns the session's bookings in the order they were made
func (r *BookingRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Booking, error) {
	if sessionID == "" {
		return nil, models.ErrNoActiveSession
	}

	query := `
		SELECT` + bookingColumns + `
		FROM bookings b
		LEFT JOIN clubs c ON c.id = b.club_id
		WHERE b.user_session = $1
		ORDER BY b.created_at ASC, b.id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}

// Update sets the date, headcounts and total price of one booking
func (r *BookingRepository) Update(ctx context.Context, sessionID string, id int64, req *models.BookingUpdateRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		WITH b AS (
			UPDATE bookings
			SET booking_date = $1, men_count = $2, women_count = $3, total_price = $4, updated_at = $5
			WHERE id = $6 AND user_session = $7
			RETURNING *
		)
		SELECT` + bookingColumns + `
		FROM b
		LEFT JOIN clubs c ON c.id = b.club_id`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, req.Date, req.MenCount, req.WomenCount, req.TotalPrice, time.Now(), id, sessionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}

// Delete removes one booking of the session
func (r *BookingRepository) Delete(ctx context.Context, sessionID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1 AND user_session = $2`, id, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", models.ErrBookingNotFound, id)
	}

	return nil
}

// DeleteAllBySession removes every booking of the session
func (r *BookingRepository) DeleteAllBySession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return models.ErrNoActiveSession
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE user_session = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}
	return nil
}
