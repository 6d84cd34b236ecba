package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"nightlife-booking-platform/internal/models"
)

type contextKey string

const (
	sessionKey   contextKey = "invite_session"
	requestIDKey contextKey = "request_id"

	sessionName = "session"
)

// SessionManager keeps the invite session in a signed cookie
type SessionManager struct {
	store sessions.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionManager creates a session manager over a gorilla session store
func NewSessionManager(store sessions.Store, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = models.DefaultSessionTTL
	}
	return &SessionManager{store: store, ttl: ttl, now: time.Now}
}

// NewCookieStore creates the cookie store used for invite sessions
func NewCookieStore(secret string, ttl time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Save writes the session to the response cookie
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, session *models.Session) error {
	s, err := m.store.Get(r, sessionName)
	if err != nil && s == nil {
		return err
	}

	s.Values["session_id"] = session.ID
	s.Values["login_time"] = session.LoginTime.Unix()
	s.Options.MaxAge = int(m.ttl.Seconds())
	return s.Save(r, w)
}

// Load reads the session from the request cookie. It returns
// ErrNoActiveSession when there is none and ErrSessionExpired when it is
// too old.
func (m *SessionManager) Load(r *http.Request) (*models.Session, error) {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil, models.ErrNoActiveSession
	}

	id, _ := s.Values["session_id"].(string)
	loginUnix, _ := s.Values["login_time"].(int64)
	if id == "" || loginUnix == 0 {
		return nil, models.ErrNoActiveSession
	}

	session := &models.Session{ID: id, LoginTime: time.Unix(loginUnix, 0), TTL: m.ttl}
	if err := session.Check(m.now()); err != nil {
		return nil, err
	}
	return session, nil
}

// Clear expires the session cookie
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, err := m.store.Get(r, sessionName)
	if err != nil && s == nil {
		return err
	}
	s.Values = make(map[interface{}]interface{})
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// LoadSession puts a valid invite session, if any, into the request context
func (m *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Load(r)
		if err != nil {
			if errors.Is(err, models.ErrSessionExpired) {
				log.Printf("Expired session cookie cleared")
				if clearErr := m.Clear(w, r); clearErr != nil {
					log.Printf("Failed to clear session cookie: %v", clearErr)
				}
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireSession rejects requests without a valid invite session
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSessionFromContext(r.Context()) == nil {
			writeJSONError(w, http.StatusUnauthorized, models.ErrNoActiveSession.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession returns a context carrying the session
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext returns the session of the request, or nil
func GetSessionFromContext(ctx context.Context) *models.Session {
	if session, ok := ctx.Value(sessionKey).(*models.Session); ok {
		return session
	}
	return nil
}
