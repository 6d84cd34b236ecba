package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"nightlife-booking-platform/internal/models"

	"github.com/stretchr/testify/mock"
)

// fakeBookingRepository is an in-memory booking store for testing

type fakeBookingRepository struct {
	mu            sync.Mutex
	bookings      map[int64]*models.Booking
	clubs         map[int]*models.Club
	nextID        int64
	calls         map[string]int
	shouldFailOps map[string]bool
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{
		bookings: make(map[int64]*models.Booking),
		clubs: map[int]*models.Club{
			1: {ID: 1, Name: "Playboy Club", Location: "Westlands"},
			2: {ID: 2, Name: "Privee", Location: "Upper Hill"},
		},
		nextID:        1,
		calls:         make(map[string]int),
		shouldFailOps: make(map[string]bool),
	}
}

func (f *fakeBookingRepository) fail(op string) error {
	f.calls[op]++
	if f.shouldFailOps[op] {
		return errors.New("mock error")
	}
	return nil
}

func (f *fakeBookingRepository) Create(ctx context.Context, sessionID string, req *models.BookingCreateRequest) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Create"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:          f.nextID,
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
	if club, ok := f.clubs[req.ClubID]; ok {
		booking.ClubName = club.Name
		booking.ClubLocation = club.Location
	}
	f.bookings[f.nextID] = booking
	f.nextID++

	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListBySession"); err != nil {
		return nil, err
	}

	var result []*models.Booking
	for _, b := range f.bookings {
		if b.UserSession == sessionID {
			copied := *b
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeBookingRepository) Update(ctx context.Context, sessionID string, id int64, req *models.BookingUpdateRequest) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Update"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, ok := f.bookings[id]
	if !ok || b.UserSession != sessionID {
		return nil, models.ErrBookingNotFound
	}
	b.BookingDate, b.MenCount, b.WomenCount, b.TotalPrice = req.Date, req.MenCount, req.WomenCount, req.TotalPrice
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepository) Delete(ctx context.Context, sessionID string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Delete"); err != nil {
		return err
	}

	b, ok := f.bookings[id]
	if !ok || b.UserSession != sessionID {
		return models.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepository) DeleteAllBySession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteAllBySession"); err != nil {
		return err
	}

	for id, b := range f.bookings {
		if b.UserSession == sessionID {
			delete(f.bookings, id)
		}
	}
	return nil
}

func (f *fakeBookingRepository) count(sessionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.UserSession == sessionID {
			n++
		}
	}
	return n
}

// MockBookingRepository records booking store calls
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, sessionID string, req *models.BookingCreateRequest) (*models.Booking, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Booking, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, sessionID string, id int64, req *models.BookingUpdateRequest) (*models.Booking, error) {
	args := m.Called(ctx, sessionID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, sessionID string, id int64) error {
	args := m.Called(ctx, sessionID, id)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteAllBySession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockInviteCodeRepository records invite code lookups
type MockInviteCodeRepository struct {
	mock.Mock
}

func (m *MockInviteCodeRepository) GetActiveByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InviteCode), args.Error(1)
}

func (m *MockInviteCodeRepository) IncrementUses(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClubRepository serves clubs for testing
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) GetAllActive(ctx context.Context) ([]*models.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Club), args.Error(1)
}

func (m *MockClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}

func (m *MockClubRepository) GetByCategory(ctx context.Context, category string) ([]*models.Club, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Club), args.Error(1)
}

// MockPromotionRepository serves promotions for testing
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) GetActive(ctx context.Context) ([]*models.PromotionalAd, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PromotionalAd), args.Error(1)
}

func (m *MockPromotionRepository) GetByID(ctx context.Context, id int) (*models.PromotionalAd, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionalAd), args.Error(1)
}

func testSession() *models.Session {
	return &models.Session{ID: "session_test", LoginTime: time.Now()}
}
