package handlers

import (
	"net/http"
	"strings"

	"nightlife-booking-platform/internal/models"
	"nightlife-booking-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// ClubHandler serves the club catalog
type ClubHandler struct {
	clubService services.ClubServiceInterface
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService services.ClubServiceInterface) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// ListClubs returns all active clubs
func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubService.GetAllClubs(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilClubs(clubs))
}

// SearchClubs filters clubs by ?q= and any number of ?filter= values
func (h *ClubHandler) SearchClubs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filters []string
	for _, value := range query["filter"] {
		for _, f := range strings.Split(value, ",") {
			if f = strings.TrimSpace(f); f != "" && !strings.EqualFold(f, "all") {
				filters = append(filters, f)
			}
		}
	}

	clubs, err := h.clubService.SearchClubs(r.Context(), models.ClubSearchFilters{
		Query:   query.Get("q"),
		Filters: filters,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilClubs(clubs))
}

// GetClub returns one club
func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	club, err := h.clubService.GetClubByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, club)
}

// ClubsByCategory returns the clubs of a category
func (h *ClubHandler) ClubsByCategory(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubService.GetClubsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilClubs(clubs))
}

// PromotionResponse is a promotional ad with its per-person discount
type PromotionResponse struct {
	*models.PromotionalAd
	Savings int `json:"savings"`
}

// ListPromotions returns the active promotional ads
func (h *ClubHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	ads, err := h.clubService.GetPromotionalAds(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	promotions := make([]PromotionResponse, 0, len(ads))
	for _, ad := range ads {
		promotions = append(promotions, PromotionResponse{PromotionalAd: ad, Savings: ad.Savings()})
	}
	writeJSON(w, http.StatusOK, promotions)
}

func nonNilClubs(clubs []*models.Club) []*models.Club {
	if clubs == nil {
		return []*models.Club{}
	}
	return clubs
}
