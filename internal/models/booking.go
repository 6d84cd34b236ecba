package models

import (
	"fmt"
	"strconv"
	"time"
)

// BookingStatus represents the lifecycle of a stored booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a row of the bookings table, joined with its club
type Booking struct {
	ID           int64         `json:"id" db:"id"`
	ClubID       int           `json:"club_id" db:"club_id"`
	BookingDate  string        `json:"booking_date" db:"booking_date"`
	MenCount     int           `json:"men_count" db:"men_count"`
	WomenCount   int           `json:"women_count" db:"women_count"`
	UnitPrice    int           `json:"unit_price" db:"unit_price"`
	TotalPrice   int           `json:"total_price" db:"total_price"`
	UserSession  string        `json:"-" db:"user_session"`
	Status       BookingStatus `json:"status" db:"status"`
	ClubName     string        `json:"club_name" db:"club_name"`
	ClubLocation string        `json:"club_location" db:"club_location"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// ToTicketItem converts a stored booking into a ticket line item
func (b *Booking) ToTicketItem() TicketItem {
	name := b.ClubName
	if name == "" {
		name = "Unknown Club"
	}

	unitPrice := b.UnitPrice
	if unitPrice <= 0 {
		if people := b.MenCount + b.WomenCount; people > 0 {
			unitPrice = b.TotalPrice / people
		} else {
			unitPrice = DefaultUnitPrice
		}
	}

	item := TicketItem{
		ID:        strconv.FormatInt(b.ID, 10),
		BackendID: b.ID,
		Venue:     strconv.Itoa(b.ClubID),
		Name:      name,
		Location:  b.ClubLocation,
		Date:      b.BookingDate,
		Men:       b.MenCount,
		Women:     b.WomenCount,
		UnitPrice: unitPrice,
		Status:    b.Status,
	}
	item.Recalculate()
	return item
}

// BookingCreateRequest represents a request to store a new booking
type BookingCreateRequest struct {
	ClubID     int    `json:"club_id"`
	Date       string `json:"booking_date"`
	MenCount   int    `json:"men_count"`
	WomenCount int    `json:"women_count"`
	UnitPrice  int    `json:"unit_price"`
	TotalPrice int    `json:"total_price"`
}

// Validate validates booking creation data
func (req *BookingCreateRequest) Validate() error {
	if req.ClubID <= 0 {
		return fmt.Errorf("%w: club id must be positive", ErrInvalidInput)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: booking date is required", ErrInvalidInput)
	}
	if req.MenCount < 0 || req.WomenCount < 0 {
		return fmt.Errorf("%w: headcounts cannot be negative", ErrInvalidInput)
	}
	if req.MenCount+req.WomenCount == 0 {
		return fmt.Errorf("%w: booking needs at least one person", ErrInvalidInput)
	}
	if req.TotalPrice != ComputeTotalPrice(req.MenCount, req.WomenCount, req.UnitPrice) {
		return fmt.Errorf("%w: total price does not match headcount", ErrInvalidInput)
	}
	return nil
}

// BookingUpdateRequest carries the new state of a stored booking
type BookingUpdateRequest struct {
	Date       string `json:"booking_date"`
	MenCount   int    `json:"men_count"`
	WomenCount int    `json:"women_count"`
	TotalPrice int    `json:"total_price"`
}

// Validate validates booking update data
func (req *BookingUpdateRequest) Validate() error {
	if req.Date == "" {
		return fmt.Errorf("%w: booking date is required", ErrInvalidInput)
	}
	if req.MenCount < 0 || req.WomenCount < 0 || req.TotalPrice < 0 {
		return fmt.Errorf("%w: counts and price cannot be negative", ErrInvalidInput)
	}
	return nil
}
