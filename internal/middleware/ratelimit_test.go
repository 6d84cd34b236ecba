package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func newTestLimiter(max int, window time.Duration, now *time.Time) *InviteRateLimiter {
	rl := NewInviteRateLimiter(max, window)
	rl.now = func() time.Time { return *now }
	return rl
}

func TestInviteRateLimiter_IsAllowed(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(3, time.Minute, &now)
	defer rl.Stop()

	ip := "192.168.1.1"

	for i := 0; i < 3; i++ {
		if !rl.IsAllowed(ip) {
			t.Errorf("Attempt %d should be allowed", i+1)
		}
		rl.RecordAttempt(ip)
	}

	if rl.IsAllowed(ip) {
		t.Error("4th attempt should be blocked")
	}

	if !rl.IsAllowed("192.168.1.2") {
		t.Error("Different IP should be allowed")
	}

	now = now.Add(61 * time.Second)
	if !rl.IsAllowed(ip) {
		t.Error("Should be allowed after window expires")
	}
}

func TestInviteRateLimiter_GetTimeUntilAllowed(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &now)
	defer rl.Stop()

	ip := "10.0.0.1"
	if d := rl.GetTimeUntilAllowed(ip); d != 0 {
		t.Errorf("Expected 0 duration, got %v", d)
	}

	rl.RecordAttempt(ip)
	now = now.Add(10 * time.Second)
	rl.RecordAttempt(ip)
	now = now.Add(5 * time.Second)

	if d := rl.GetTimeUntilAllowed(ip); d != 45*time.Second {
		t.Errorf("Expected 45s, got %v", d)
	}
}

func TestInviteRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &now)
	defer rl.Stop()

	rl.RecordAttempt("a")
	now = now.Add(2 * time.Minute)
	rl.sweep()

	if len(rl.attempts) != 0 {
		t.Errorf("Expected stale entries to be removed, got %d", len(rl.attempts))
	}
}

func TestInviteRateLimit_Middleware(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)
	defer rl.Stop()

	handler := InviteRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/invite", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first attempt to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Errorf("Expected Retry-After 60, got %q", second.Header().Get("Retry-After"))
	}

	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/auth/invite", nil))
	if get.Code != http.StatusOK {
		t.Errorf("GET requests should not be limited, got %d", get.Code)
	}
}

func TestInviteRateLimit_IgnoresSpoofedForwardingHeaders(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(3, time.Minute, &now)
	defer rl.Stop()

	handler := InviteRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/invite", nil)
		req.RemoteAddr = "198.51.100.20:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}

	if allowed != 3 {
		t.Errorf("Expected 3 attempts allowed from one peer, got %d", allowed)
	}
}

func TestInviteRateLimit_TrustedProxy(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)
	defer rl.Stop()

	handler := chimiddleware.RealIP(InviteRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	for _, client := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/auth/invite", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("Expected %s to be allowed behind the proxy, got %d", client, rec.Code)
		}
	}
}

func TestInviteRateLimiter_NonPositiveLimit(t *testing.T) {
	now := time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC)
	rl := newTestLimiter(0, time.Minute, &now)
	defer rl.Stop()

	if !rl.IsAllowed("192.0.2.1") {
		t.Fatal("First attempt should be allowed")
	}
	rl.RecordAttempt("192.0.2.1")
	if rl.IsAllowed("192.0.2.1") {
		t.Error("Second attempt should be blocked")
	}
	if wait := rl.GetTimeUntilAllowed("192.0.2.1"); wait != time.Minute {
		t.Errorf("Expected a one minute wait, got %s", wait)
	}
}
