package handlers

import (
	"log"
	"net/http"
	"time"

	"nightlife-booking-platform/internal/middleware"
	"nightlife-booking-platform/internal/models"
	"nightlife-booking-platform/internal/services"
)

// AuthHandler handles invite-code access
type AuthHandler struct {
	authService services.AuthServiceInterface
	sessions    *middleware.SessionManager
	registry    services.TicketRegistryInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface, sessions *middleware.SessionManager, registry services.TicketRegistryInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		registry:    registry,
	}
}

// InviteRequest is the body of POST /auth/invite
type InviteRequest struct {
	Code string `json:"code"`
}

// SessionResponse describes the caller's session
type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	SessionID     string    `json:"session_id,omitempty"`
	LoginTime     time.Time `json:"login_time,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

func sessionResponse(session *models.Session) SessionResponse {
	return SessionResponse{
		Authenticated: true,
		SessionID:     session.ID,
		LoginTime:     session.LoginTime,
		ExpiresAt:     session.ExpiresAt(),
	}
}

// VerifyInvite exchanges an invitation code for a session cookie
func (h *AuthHandler) VerifyInvite(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.authService.VerifyInviteCode(r.Context(), req.Code)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.sessions.Save(w, r, session); err != nil {
		log.Printf("Failed to save session %s: %v", session.ID, err)
		writeError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(session))
}

// Logout ends the session and drops its cached ticket
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSessionFromContext(r.Context()); session != nil {
		h.registry.Forget(session.ID)
		log.Printf("Session %s logged out", session.ID)
	}

	if err := h.sessions.Clear(w, r); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}

	writeJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
}

// Session reports whether the caller holds a valid session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if err := h.authService.ValidateSession(session); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(session))
}
