// Package ratelimit provides per-client rate limiting for the proxy routes,
// protecting the upstream mock API from request storms.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// MaxRequests per client per window. 0 disables limiting entirely.
	MaxRequests int
	// Window is the counting window (default: 60s).
	Window time.Duration

	// Clock for testing (nil uses real time).
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxRequests: 120,
		Window:      60 * time.Second,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// entry tracks request counts within one window.
type entry struct {
	count   int
	firstAt time.Time
}

// Limiter implements a fixed-window per-client request limiter.
type Limiter struct {
	config *Config
	clock  Clock

	mu      sync.Mutex
	clients map[string]*entry
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	if cfg.Window <= 0 {
		cfg.Window = 60 * time.Second
	}
	return &Limiter{
		config:  cfg,
		clock:   clock,
		clients: make(map[string]*entry),
	}
}

// Allow checks and records one request for the given client key.
func (l *Limiter) Allow(client string) LimitResult {
	if l.config.MaxRequests == 0 {
		return LimitResult{Allowed: true}
	}

	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.clients[client]
	if e == nil || now.Sub(e.firstAt) >= l.config.Window {
		l.clients[client] = &entry{count: 1, firstAt: now}
		l.maybeSweep(now)
		return LimitResult{Allowed: true}
	}

	if e.count >= l.config.MaxRequests {
		return LimitResult{
			Allowed:    false,
			RetryAfter: l.config.Window - now.Sub(e.firstAt),
		}
	}

	e.count++
	return LimitResult{Allowed: true}
}

// maybeSweep drops expired entries once the client map grows large.
// Called with the lock held.
func (l *Limiter) maybeSweep(now time.Time) {
	if len(l.clients) < 1024 {
		return
	}
	for key, e := range l.clients {
		if now.Sub(e.firstAt) >= l.config.Window {
			delete(l.clients, key)
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For (added by your proxy).
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			candidate := strings.TrimSpace(parts[len(parts)-1])
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
