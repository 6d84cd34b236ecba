package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"nightlife-booking-platform/internal/models"
	"nightlife-booking-platform/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of services.AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) VerifyInviteCode(ctx context.Context, code string) (*models.Session, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthService) ValidateSession(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

// MockClubService is a mock implementation of services.ClubServiceInterface
type MockClubService struct {
	mock.Mock
}

func (m *MockClubService) GetAllClubs(ctx context.Context) ([]*models.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Club), args.Error(1)
}

func (m *MockClubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}

func (m *MockClubService) GetClubsByCategory(ctx context.Context, category string) ([]*models.Club, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Club), args.Error(1)
}

func (m *MockClubService) SearchClubs(ctx context.Context, filters models.ClubSearchFilters) ([]*models.Club, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Club), args.Error(1)
}

func (m *MockClubService) GetPromotionalAds(ctx context.Context) ([]*models.PromotionalAd, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PromotionalAd), args.Error(1)
}

func (m *MockClubService) GetPromotionByID(ctx context.Context, id int) (*models.PromotionalAd, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionalAd), args.Error(1)
}

// MockPaymentService is a mock implementation of services.PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Checkout(ctx context.Context, session *models.Session, summary models.TicketSummary) (*services.PaymentResult, error) {
	args := m.Called(ctx, session, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentResult), args.Error(1)
}

// memoryBookingRepository keeps bookings in memory for handler tests
type memoryBookingRepository struct {
	mu         sync.Mutex
	bookings   map[int64]*models.Booking
	nextID     int64
	failCreate bool
}

func newMemoryBookingRepository() *memoryBookingRepository {
	return &memoryBookingRepository{bookings: make(map[int64]*models.Booking), nextID: 1}
}

func (m *memoryBookingRepository) Create(ctx context.Context, sessionID string, req *models.BookingCreateRequest) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return nil, errors.New("connection refused")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	booking := &models.Booking{
		ID:          m.nextID,
		ClubID:      req.ClubID,
		BookingDate: req.Date,
		MenCount:    req.MenCount,
		WomenCount:  req.WomenCount,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  req.TotalPrice,
		UserSession: sessionID,
		Status:      models.BookingPending,
		CreatedAt:   time.Now(),
	}
	m.bookings[booking.ID] = booking
	m.nextID++
	copy := *booking
	return &copy, nil
}

func (m *memoryBookingRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Booking
	for _, b := range m.bookings {
		if b.UserSession == sessionID {
			copy := *b
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryBookingRepository) Update(ctx context.Context, sessionID string, id int64, req *models.BookingUpdateRequest) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.UserSession != sessionID {
		return nil, models.ErrBookingNotFound
	}
	b.BookingDate, b.MenCount, b.WomenCount, b.TotalPrice = req.Date, req.MenCount, req.WomenCount, req.TotalPrice
	copy := *b
	return &copy, nil
}

func (m *memoryBookingRepository) Delete(ctx context.Context, sessionID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.UserSession != sessionID {
		return models.ErrBookingNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *memoryBookingRepository) DeleteAllBySession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.bookings {
		if b.UserSession == sessionID {
			delete(m.bookings, id)
		}
	}
	return nil
}
