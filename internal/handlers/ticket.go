package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"nightlife-booking-platform/internal/middleware"
	"nightlife-booking-platform/internal/models"
	"nightlife-booking-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// TicketHandler serves the session's ticket
type TicketHandler struct {
	registry    services.TicketRegistryInterface
	clubService services.ClubServiceInterface
	payments    services.PaymentService
	unitPrice   int
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	registry services.TicketRegistryInterface,
	clubService services.ClubServiceInterface,
	payments services.PaymentService,
	unitPrice int,
) *TicketHandler {
	if unitPrice <= 0 {
		unitPrice = models.DefaultUnitPrice
	}
	return &TicketHandler{
		registry:    registry,
		clubService: clubService,
		payments:    payments,
		unitPrice:   unitPrice,
	}
}

// TicketResponse is the ticket as returned to the client
type TicketResponse struct {
	Items   []models.TicketItem  `json:"items"`
	Summary models.TicketSummary `json:"summary"`
}

// AddItemRequest is the body of POST /ticket/items
type AddItemRequest struct {
	ClubID      int    `json:"club_id"`
	Date        string `json:"date"`
	Men         int    `json:"men"`
	Women       int    `json:"women"`
	PromotionID *int   `json:"promotion_id,omitempty"`
}

// UpdateCountRequest is the body of POST /ticket/items/{id}/count
type UpdateCountRequest struct {
	Gender    models.Gender `json:"gender"`
	Increment bool          `json:"increment"`
}

// CheckoutResponse carries the payment outcome and the ticket it covered
type CheckoutResponse struct {
	Payment *services.PaymentResult `json:"payment"`
	Summary models.TicketSummary    `json:"summary"`
}

func (h *TicketHandler) store(r *http.Request) (*models.Session, *services.SyncedTicketStore, error) {
	session := middleware.GetSessionFromContext(r.Context())
	store, err := h.registry.StoreFor(r.Context(), session)
	if err != nil {
		return nil, nil, err
	}
	return session, store, nil
}

func (h *TicketHandler) writeTicket(w http.ResponseWriter, store services.TicketStore) {
	items := store.Tickets()
	if items == nil {
		items = []models.TicketItem{}
	}
	writeJSON(w, http.StatusOK, TicketResponse{Items: items, Summary: store.Summary()})
}

// GetTicket returns the ticket with its totals
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	_, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.writeTicket(w, store)
}

// AddItem books a club for a date, merging into an existing line item
func (h *TicketHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Men+req.Women <= 0 {
		respondError(w, r, fmt.Errorf("%w: select at least one guest", models.ErrInvalidInput))
		return
	}

	_, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	club, err := h.clubService.GetClubByID(r.Context(), req.ClubID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	unitPrice := h.unitPrice
	if req.PromotionID != nil {
		promo, err := h.clubService.GetPromotionByID(r.Context(), *req.PromotionID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if promo.ClubID != club.ID {
			respondError(w, r, fmt.Errorf("%w: promotion %d is not offered by club %d", models.ErrInvalidInput, promo.ID, club.ID))
			return
		}
		unitPrice = promo.SpecialPrice
	}

	ticketReq := models.TicketRequest{
		VenueKey:  strconv.Itoa(club.ID),
		Name:      club.Name,
		Location:  club.Location,
		Date:      req.Date,
		Men:       req.Men,
		Women:     req.Women,
		UnitPrice: unitPrice,
	}
	if err := store.AddTicket(r.Context(), ticketReq); err != nil {
		respondError(w, r, err)
		return
	}

	h.writeTicket(w, store)
}

// RemoveItem deletes a line item
func (h *TicketHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	_, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := store.RemoveTicket(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	h.writeTicket(w, store)
}

// UpdateCount adds or removes one guest of a gender
func (h *TicketHandler) UpdateCount(w http.ResponseWriter, r *http.Request) {
	var req UpdateCountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if !req.Gender.Valid() {
		respondError(w, r, fmt.Errorf("%w: gender must be men or women", models.ErrInvalidInput))
		return
	}

	_, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := store.UpdateTicketCount(r.Context(), chi.URLParam(r, "id"), req.Gender, req.Increment); err != nil {
		respondError(w, r, err)
		return
	}
	h.writeTicket(w, store)
}

// ClearTicket removes every line item
func (h *TicketHandler) ClearTicket(w http.ResponseWriter, r *http.Request) {
	_, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := store.ClearAllTickets(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	h.writeTicket(w, store)
}

// RefreshTicket reloads the ticket from the stored bookings
func (h *TicketHandler) RefreshTicket(w http.ResponseWriter, r *http.Request) {
	_, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := store.RefreshTickets(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	h.writeTicket(w, store)
}

// Checkout hands the ticket totals to the payment service
func (h *TicketHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, store, err := h.store(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary := store.Summary()
	if summary.Items == 0 {
		respondError(w, r, fmt.Errorf("%w: ticket is empty", models.ErrInvalidInput))
		return
	}

	result, err := h.payments.Checkout(r.Context(), session, summary)
	if err != nil {
		if errors.Is(err, models.ErrNotImplemented) && result != nil {
			log.Printf("Checkout for %s not completed: %v", session.ID, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotImplemented)
			writeBody(w, APIResponse{Success: false, Data: CheckoutResponse{Payment: result, Summary: summary}, Error: result.Message})
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{Payment: result, Summary: summary})
}
