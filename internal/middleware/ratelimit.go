package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"
)

// InviteRateLimiter limits invite code attempts per client
type InviteRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.RWMutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewInviteRateLimiter creates a limiter and starts its cleanup loop.
// maxAttempts below one is raised to one.
func NewInviteRateLimiter(maxAttempts int, window time.Duration) *InviteRateLimiter {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	rl := &InviteRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup loop
func (rl *InviteRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// IsAllowed checks if an attempt from the given client is allowed
func (rl *InviteRateLimiter) IsAllowed(client string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.recent(rl.attempts[client], rl.now())
	if len(valid) == 0 {
		delete(rl.attempts, client)
	} else {
		rl.attempts[client] = valid
	}

	return len(valid) < rl.maxAttempts
}

// RecordAttempt records an attempt for the given client
func (rl *InviteRateLimiter) RecordAttempt(client string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[client] = append(rl.attempts[client], rl.now())
}

// GetTimeUntilAllowed returns how long the client has to wait
func (rl *InviteRateLimiter) GetTimeUntilAllowed(client string) time.Duration {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	now := rl.now()
	valid := rl.recent(rl.attempts[client], now)
	if len(valid) < rl.maxAttempts {
		return 0
	}

	// The oldest attempt inside the window frees the next slot
	return valid[len(valid)-rl.maxAttempts].Add(rl.window).Sub(now)
}

func (rl *InviteRateLimiter) recent(attempts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	var valid []time.Time
	for _, attempt := range attempts {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}
	return valid
}

// cleanup removes old entries periodically
func (rl *InviteRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *InviteRateLimiter) sweep() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for client, attempts := range rl.attempts {
		if valid := rl.recent(attempts, now); len(valid) == 0 {
			delete(rl.attempts, client)
		} else {
			rl.attempts[client] = valid
		}
	}
}

// InviteRateLimit rate limits POST requests to invite verification
func InviteRateLimit(rateLimiter *InviteRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			client := getClientIP(r)

			if !rateLimiter.IsAllowed(client) {
				wait := rateLimiter.GetTimeUntilAllowed(client)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(wait.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "Too many invitation attempts. Please try again in "+wait.Round(time.Second).String()+".")
				return
			}

			rateLimiter.RecordAttempt(client)
			next.ServeHTTP(w, r)
		})
	}
}
