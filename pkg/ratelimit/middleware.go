package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/hypeit-za/panel/pkg/config"
	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
)

// bucketTTL is how long inactive buckets stay in memory
const bucketTTL = 1 * time.Hour

// Middleware holds the rate limiting middleware state. The general
// handler applies global, per-IP, and per-user limits; the scoped
// handlers add the much tighter budgets for passcode and recovery-code
// submission, keyed by IP so a guesser cannot reset their budget by
// re-authenticating.
type Middleware struct {
	config          config.RateLimitConfig
	globalLimiter   *KeyedLimiter
	ipLimiter       *KeyedLimiter
	userLimiter     *KeyedLimiter
	twoFactorLimit  *KeyedLimiter
	recoveryLimiter *KeyedLimiter
}

// NewMiddleware creates a new rate limiting middleware
func NewMiddleware(cfg config.RateLimitConfig) *Middleware {
	m := &Middleware{
		config: cfg,
	}

	if cfg.GlobalEnabled {
		m.globalLimiter = NewKeyedLimiter(cfg.GlobalCapacity, cfg.GlobalRefillRate, bucketTTL)
	}
	if cfg.PerIPEnabled {
		m.ipLimiter = NewKeyedLimiter(cfg.PerIPCapacity, cfg.PerIPRefillRate, bucketTTL)
	}
	if cfg.PerUserEnabled {
		m.userLimiter = NewKeyedLimiter(cfg.PerUserCapacity, cfg.PerUserRefillRate, bucketTTL)
	}
	if cfg.TwoFactorEnabled {
		m.twoFactorLimit = NewKeyedLimiter(cfg.TwoFactorCapacity, cfg.TwoFactorRefillRate, bucketTTL)
	}
	if cfg.RecoveryEnabled {
		m.recoveryLimiter = NewKeyedLimiter(cfg.RecoveryCapacity, cfg.RecoveryRefillRate, bucketTTL)
	}

	return m
}

// Handler returns the general rate limiting middleware
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.globalLimiter != nil && !m.globalLimiter.Allow("global") {
			m.rateLimitExceeded(w, r, "global")
			return
		}

		ip := getClientIP(r)
		if m.ipLimiter != nil && ip != "" && !m.ipLimiter.Allow(ip) {
			m.rateLimitExceeded(w, r, "ip")
			return
		}

		userID := getUserID(r)
		if m.userLimiter != nil && userID != "" && !m.userLimiter.Allow(userID) {
			m.rateLimitExceeded(w, r, "user")
			return
		}

		if m.config.IncludeHeaders {
			m.addRateLimitHeaders(w, ip, userID)
		}

		next.ServeHTTP(w, r)
	})
}

// TwoFactorHandler enforces the tight passcode-submission budget
func (m *Middleware) TwoFactorHandler(next http.Handler) http.Handler {
	return m.scopedHandler(m.twoFactorLimit, "two_factor", next)
}

// RecoveryHandler enforces the recovery-code submission budget
func (m *Middleware) RecoveryHandler(next http.Handler) http.Handler {
	return m.scopedHandler(m.recoveryLimiter, "recovery", next)
}

func (m *Middleware) scopedHandler(limiter *KeyedLimiter, scope string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter != nil {
			if !limiter.Allow(getClientIP(r)) {
				m.rateLimitExceeded(w, r, scope)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitExceeded writes the coded error response
func (m *Middleware) rateLimitExceeded(w http.ResponseWriter, r *http.Request, limitType string) {
	slog.Warn("Rate limit exceeded",
		"type", limitType,
		"ip", getClientIP(r),
		"user", getUserID(r),
		"path", r.URL.Path,
		"method", r.Method,
	)

	w.Header().Set("Retry-After", "60")

	rateErr := pkgerrors.RateLimitExceeded("60").WithDetail("scope", limitType)
	render.Status(r, rateErr.HTTPStatusCode())
	render.JSON(w, r, map[string]interface{}{
		"code":    rateErr.Code,
		"message": rateErr.Message,
		"details": rateErr.Details,
	})
}

// addRateLimitHeaders adds rate limit information headers
func (m *Middleware) addRateLimitHeaders(w http.ResponseWriter, ip, userID string) {
	if m.config.PerIPEnabled && ip != "" {
		w.Header().Set("X-RateLimit-Limit-IP", fmt.Sprintf("%d", m.config.PerIPCapacity))
	}

	if m.config.PerUserEnabled && userID != "" {
		w.Header().Set("X-RateLimit-Limit-User", fmt.Sprintf("%d", m.config.PerUserCapacity))
	}
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is in format "IP:port", we only want the IP
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}

	return addr
}

// getUserID extracts the user ID from JWT token in the request context
func getUserID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || claims == nil {
		return ""
	}

	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}

	return ""
}

// GetStats returns statistics about all rate limiters
func (m *Middleware) GetStats() map[string]Stats {
	stats := make(map[string]Stats)

	if m.globalLimiter != nil {
		stats["global"] = m.globalLimiter.GetStats()
	}
	if m.ipLimiter != nil {
		stats["ip"] = m.ipLimiter.GetStats()
	}
	if m.userLimiter != nil {
		stats["user"] = m.userLimiter.GetStats()
	}
	if m.twoFactorLimit != nil {
		stats["two_factor"] = m.twoFactorLimit.GetStats()
	}
	if m.recoveryLimiter != nil {
		stats["recovery"] = m.recoveryLimiter.GetStats()
	}

	return stats
}

// Reset resets rate limits for a specific IP or user
func (m *Middleware) Reset(key string) {
	if m.ipLimiter != nil {
		m.ipLimiter.Reset(key)
	}
	if m.userLimiter != nil {
		m.userLimiter.Reset(key)
	}
}
