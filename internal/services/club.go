package services

import (
	"context"
	"fmt"

	"nightlife-booking-platform/internal/models"
)

// ClubService serves the club catalog and promotions
type ClubService struct {
	clubRepo      ClubRepositoryInterface
	promotionRepo PromotionRepositoryInterface
}

// NewClubService creates a new club service
func NewClubService(clubRepo ClubRepositoryInterface, promotionRepo PromotionRepositoryInterface) *ClubService {
	return &ClubService{
		clubRepo:      clubRepo,
		promotionRepo: promotionRepo,
	}
}

// GetAllClubs returns active clubs, best rated first
func (s *ClubService) GetAllClubs(ctx context.Context) ([]*models.Club, error) {
	clubs, err := s.clubRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clubs: %w", err)
	}
	return clubs, nil
}

// GetClubByID returns one active club
func (s *ClubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: club id must be positive", models.ErrInvalidInput)
	}
	return s.clubRepo.GetByID(ctx, id)
}

// GetClubsByCategory returns active clubs of a category
func (s *ClubService) GetClubsByCategory(ctx context.Context, category string) ([]*models.Club, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", models.ErrInvalidInput)
	}
	clubs, err := s.clubRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clubs by category: %w", err)
	}
	return clubs, nil
}

// SearchClubs matches the active clubs against a query and filters
func (s *ClubService) SearchClubs(ctx context.Context, filters models.ClubSearchFilters) ([]*models.Club, error) {
	clubs, err := s.GetAllClubs(ctx)
	if err != nil {
		return nil, err
	}
	return models.FilterClubs(clubs, filters), nil
}

// GetPromotionalAds returns the active promotions, newest first
func (s *ClubService) GetPromotionalAds(ctx context.Context) ([]*models.PromotionalAd, error) {
	ads, err := s.promotionRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promotional ads: %w", err)
	}
	return ads, nil
}

// GetPromotionByID returns one active promotion
func (s *ClubService) GetPromotionByID(ctx context.Context, id int) (*models.PromotionalAd, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: promotion id must be positive", models.ErrInvalidInput)
	}
	return s.promotionRepo.GetByID(ctx, id)
}
