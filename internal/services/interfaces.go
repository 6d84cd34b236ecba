package services

import (
	"context"

	"nightlife-booking-platform/internal/models"
)

// TicketStore defines the ticket operations shared by the local and synced variants
type TicketStore interface {
	Tickets() []models.TicketItem
	Summary() models.TicketSummary
	AddTicket(ctx context.Context, req models.TicketRequest) error
	RemoveTicket(ctx context.Context, itemID string) error
	UpdateTicketCount(ctx context.Context, itemID string, gender models.Gender, increment bool) error
	ClearAllTickets(ctx context.Context) error
}

// BookingSyncer translates ticket mutations into booking store calls
type BookingSyncer interface {
	Create(ctx context.Context, req models.TicketRequest) (models.TicketItem, error)
	UpdateCounts(ctx context.Context, item models.TicketItem) error
	Delete(ctx context.Context, item models.TicketItem) error
	Clear(ctx context.Context) error
	Fetch(ctx context.Context) ([]models.TicketItem, error)
}

// BookingRepositoryInterface is the persistence contract for bookings.
// Every call is scoped to a session id.
type BookingRepositoryInterface interface {
	Create(ctx context.Context, sessionID string, req *models.BookingCreateRequest) (*models.Booking, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.Booking, error)
	Update(ctx context.Context, sessionID string, id int64, req *models.BookingUpdateRequest) (*models.Booking, error)
	Delete(ctx context.Context, sessionID string, id int64) error
	DeleteAllBySession(ctx context.Context, sessionID string) error
}

// ClubRepositoryInterface defines club persistence
type ClubRepositoryInterface interface {
	GetAllActive(ctx context.Context) ([]*models.Club, error)
	GetByID(ctx context.Context, id int) (*models.Club, error)
	GetByCategory(ctx context.Context, category string) ([]*models.Club, error)
}

// PromotionRepositoryInterface defines promotional ad persistence
type PromotionRepositoryInterface interface {
	GetActive(ctx context.Context) ([]*models.PromotionalAd, error)
	GetByID(ctx context.Context, id int) (*models.PromotionalAd, error)
}

// InviteCodeRepositoryInterface defines invite code persistence
type InviteCodeRepositoryInterface interface {
	GetActiveByCode(ctx context.Context, code string) (*models.InviteCode, error)
	IncrementUses(ctx context.Context, id int) error
}

// AuthServiceInterface defines the invite-code session service
type AuthServiceInterface interface {
	VerifyInviteCode(ctx context.Context, code string) (*models.Session, error)
	ValidateSession(session *models.Session) error
}

// ClubServiceInterface defines the club catalog service
type ClubServiceInterface interface {
	GetAllClubs(ctx context.Context) ([]*models.Club, error)
	GetClubByID(ctx context.Context, id int) (*models.Club, error)
	GetClubsByCategory(ctx context.Context, category string) ([]*models.Club, error)
	SearchClubs(ctx context.Context, filters models.ClubSearchFilters) ([]*models.Club, error)
	GetPromotionalAds(ctx context.Context) ([]*models.PromotionalAd, error)
	GetPromotionByID(ctx context.Context, id int) (*models.PromotionalAd, error)
}

// TicketRegistryInterface hands out the synced ticket of a session
type TicketRegistryInterface interface {
	StoreFor(ctx context.Context, session *models.Session) (*SyncedTicketStore, error)
	Forget(sessionID string)
}

// PaymentService processes payment for a ticket
type PaymentService interface {
	Checkout(ctx context.Context, session *models.Session, summary models.TicketSummary) (*PaymentResult, error)
}
