package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultSessionTTL is how long an invite session stays valid
const DefaultSessionTTL = 24 * time.Hour

var inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// InviteCode gates access to the app
type InviteCode struct {
	ID          int        `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	MaxUses     *int       `json:"max_uses,omitempty" db:"max_uses"`
	CurrentUses int        `json:"current_uses" db:"current_uses"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// IsExpired checks whether the code expired before now
func (c *InviteCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// IsExhausted checks whether the code reached its use limit
func (c *InviteCode) IsExhausted() bool {
	return c.MaxUses != nil && *c.MaxUses > 0 && c.CurrentUses >= *c.MaxUses
}

// NormalizeInviteCode upper-cases and trims a code
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateInviteCodeFormat checks a normalized code
func ValidateInviteCodeFormat(code string) error {
	if !inviteCodePattern.MatchString(code) {
		return ErrInvalidCodeFormat
	}
	return nil
}

// InviteCodeCreateRequest represents a request to create an invite code
type InviteCodeCreateRequest struct {
	Code      string
	MaxUses   *int
	ExpiresAt *time.Time
}

// Validate validates invite code creation data
func (req *InviteCodeCreateRequest) Validate() error {
	if err := ValidateInviteCodeFormat(req.Code); err != nil {
		return err
	}
	if req.MaxUses != nil && *req.MaxUses < 0 {
		return fmt.Errorf("%w: max uses cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Session identifies the current app user. Bookings are scoped to it.
type Session struct {
	ID        string        `json:"session_id"`
	LoginTime time.Time     `json:"login_time"`
	TTL       time.Duration `json:"-"`
}

// ExpiresAt returns the moment the session stops being valid
func (s *Session) ExpiresAt() time.Time {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return s.LoginTime.Add(ttl)
}

// Check returns nil when the session is usable at now
func (s *Session) Check(now time.Time) error {
	if s == nil || s.ID == "" || s.LoginTime.IsZero() {
		return ErrNoActiveSession
	}
	if now.After(s.ExpiresAt()) {
		return ErrSessionExpired
	}
	return nil
}
