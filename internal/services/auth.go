package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nightlife-booking-platform/internal/models"

	"github.com/google/uuid"
)

// AuthService handles invite-code access and session validation
type AuthService struct {
	inviteRepo InviteCodeRepositoryInterface
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(inviteRepo InviteCodeRepositoryInterface, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = models.DefaultSessionTTL
	}
	return &AuthService{
		inviteRepo: inviteRepo,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// VerifyInviteCode checks an invitation code and opens a session for it
func (s *AuthService) VerifyInviteCode(ctx context.Context, code string) (*models.Session, error) {
	normalized := models.NormalizeInviteCode(code)
	if err := models.ValidateInviteCodeFormat(normalized); err != nil {
		return nil, err
	}

	invite, err := s.inviteRepo.GetActiveByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInviteCode) {
			return nil, err
		}
		log.Printf("Error verifying invite code %s: %v", normalized, err)
		return nil, fmt.Errorf("failed to verify invite code: %w", err)
	}

	now := s.now()
	if invite.IsExpired(now) {
		return nil, models.ErrInviteCodeExpired
	}
	if invite.IsExhausted() {
		return nil, models.ErrInviteCodeExhausted
	}

	// A failed usage update does not block the login
	if err := s.inviteRepo.IncrementUses(ctx, invite.ID); err != nil {
		log.Printf("Error updating usage of invite code %d: %v", invite.ID, err)
	}

	session := &models.Session{
		ID:        "session_" + uuid.NewString(),
		LoginTime: now,
		TTL:       s.sessionTTL,
	}
	log.Printf("Invite code %s verified, session %s opened", normalized, session.ID)
	return session, nil
}

// ValidateSession checks that a session exists and has not expired
func (s *AuthService) ValidateSession(session *models.Session) error {
	if session != nil && session.TTL <= 0 {
		session.TTL = s.sessionTTL
	}
	return session.Check(s.now())
}
