package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypeit-za/panel/pkg/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTwoFactorHandlerLimits(t *testing.T) {
	cfg := config.DefaultRateLimitConfig()
	cfg.TwoFactorCapacity = 2
	cfg.TwoFactorRefillRate = 0.01
	m := NewMiddleware(cfg)

	handler := m.TwoFactorHandler(okHandler())

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/toggle", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("198.51.100.1").Code)
	assert.Equal(t, http.StatusOK, do("198.51.100.1").Code)

	rec := do("198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["code"])

	// A different IP has its own bucket
	assert.Equal(t, http.StatusOK, do("198.51.100.2").Code)
}

func TestScopedHandlerDisabled(t *testing.T) {
	cfg := config.DefaultRateLimitConfig()
	cfg.RecoveryEnabled = false
	m := NewMiddleware(cfg)

	handler := m.RecoveryHandler(okHandler())

	// With the scope disabled every request passes
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/recovery", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestHandlerIncludesHeaders(t *testing.T) {
	cfg := config.DefaultRateLimitConfig()
	m := NewMiddleware(cfg)

	handler := m.Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.9:4321"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit-IP"))
}
