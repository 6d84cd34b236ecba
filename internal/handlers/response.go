package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"nightlife-booking-platform/internal/models"

	"github.com/go-chi/chi/v5"
)

// APIResponse is the envelope of every JSON reply
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: status < 400, Data: data}); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeBody(w http.ResponseWriter, body APIResponse) {
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message}); err != nil {
		log.Printf("Failed to write error response: %v", err)
	}
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidCodeFormat):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoActiveSession),
		errors.Is(err, models.ErrSessionExpired),
		errors.Is(err, models.ErrInvalidInviteCode),
		errors.Is(err, models.ErrInviteCodeExpired),
		errors.Is(err, models.ErrInviteCodeExhausted):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrClubNotFound),
		errors.Is(err, models.ErrPromotionNotFound),
		errors.Is(err, models.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, models.ErrRemoteFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Server-side failures are
// logged and reported without internal detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		message = "Internal server error"
	case http.StatusBadGateway:
		log.Printf("%s %s booking store failure: %v", r.Method, r.URL.Path, err)
		message = "Booking service is unavailable. Please try again."
	}
	writeError(w, status, message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return models.ErrInvalidInput
	}
	return nil
}

func intParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, models.ErrInvalidInput
	}
	return value, nil
}
