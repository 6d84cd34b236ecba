package services

import (
	"context"
	"errors"
	"testing"

	"nightlife-booking-platform/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []*models.Club {
	return []*models.Club{
		{ID: 1, Name: "Playboy Club", Location: "Westlands", Category: "nightclub", Type: "club", Rating: 4.8},
		{ID: 2, Name: "Privee", Location: "Upper Hill", Category: "lounge", Type: "rooftop", Rating: 4.6, Tags: []string{"vip"}},
	}
}

func TestClubService_SearchClubs(t *testing.T) {
	ctx := context.Background()
	clubRepo := new(MockClubRepository)
	clubRepo.On("GetAllActive", ctx).Return(catalog(), nil)
	service := NewClubService(clubRepo, new(MockPromotionRepository))

	found, err := service.SearchClubs(ctx, models.ClubSearchFilters{Query: "west"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Playboy Club", found[0].Name)

	found, err = service.SearchClubs(ctx, models.ClubSearchFilters{Query: "VIP"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].ID)

	found, err = service.SearchClubs(ctx, models.ClubSearchFilters{Filters: []string{"lounge", "club"}})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestClubService_Errors(t *testing.T) {
	ctx := context.Background()
	clubRepo := new(MockClubRepository)
	promoRepo := new(MockPromotionRepository)
	service := NewClubService(clubRepo, promoRepo)

	clubRepo.On("GetAllActive", ctx).Return(nil, errors.New("db down"))
	_, err := service.SearchClubs(ctx, models.ClubSearchFilters{Query: "x"})
	assert.Error(t, err)

	_, err = service.GetClubByID(ctx, 0)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = service.GetClubsByCategory(ctx, "")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = service.GetPromotionByID(ctx, -1)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	clubRepo.On("GetByID", ctx, 9).Return(nil, models.ErrClubNotFound)
	_, err = service.GetClubByID(ctx, 9)
	assert.True(t, errors.Is(err, models.ErrClubNotFound))
}

func TestClubService_Passthrough(t *testing.T) {
	ctx := context.Background()
	clubRepo := new(MockClubRepository)
	promoRepo := new(MockPromotionRepository)
	service := NewClubService(clubRepo, promoRepo)

	clubRepo.On("GetByCategory", ctx, "lounge").Return(catalog()[1:], nil)
	promoRepo.On("GetActive", ctx).Return([]*models.PromotionalAd{{ID: 1, ClubID: 2, SpecialPrice: 800, OriginalPrice: 1200}}, nil)
	promoRepo.On("GetByID", ctx, 1).Return(&models.PromotionalAd{ID: 1, ClubID: 2, SpecialPrice: 800}, nil)

	clubs, err := service.GetClubsByCategory(ctx, "lounge")
	require.NoError(t, err)
	assert.Len(t, clubs, 1)

	ads, err := service.GetPromotionalAds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 400, ads[0].Savings())

	promo, err := service.GetPromotionByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 800, promo.SpecialPrice)

	clubRepo.AssertExpectations(t)
	promoRepo.AssertExpectations(t)
}
