package security

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a per-client token bucket. Each client gets rate
// tokens per window; empty buckets refill when the window elapses.
type RateLimiter struct {
	clients map[string]*bucket
	mu      sync.Mutex
	rate    int
	window  time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window
// for each client IP
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
	go rl.evictStale()
	return rl
}

// Allow reports whether a request from ip fits within its bucket
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.clients[ip]
	if !ok {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.clients[ip] = b
	}

	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// evictStale drops buckets idle for two windows so the client map does
// not grow without bound
func (rl *RateLimiter) evictStale() {
	interval := rl.window * 10
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, b := range rl.clients {
			if now.Sub(b.lastRefill) > rl.window*2 {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request, honoring the
// forwarding headers set by a reverse proxy
func GetClientIP(r *http.Request) string {
	// X-Forwarded-For may hold a chain; the first hop is the client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
