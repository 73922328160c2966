package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	defer limiter.Close()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("10.0.0.1"), "first request should pass")
	require.False(t, limiter.Allow("10.0.0.1"), "second request in the same instant is throttled")
	require.True(t, limiter.Allow("10.0.0.2"), "other clients keep their own bucket")

	now = now.Add(time.Second)
	require.True(t, limiter.Allow("10.0.0.1"), "bucket refills after one second")
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	defer limiter.Close()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	now = now.Add(visitorIdleTTL + time.Second)
	limiter.Allow("10.0.0.2")
	limiter.evictIdle()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	require.NotContains(t, limiter.visitors, "10.0.0.1")
	require.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	cases := map[string]string{
		"192.0.2.1:1234":    "192.0.2.1",
		"[2001:db8::1]:443": "2001:db8::1",
		"192.0.2.9":         "192.0.2.9",
	}
	for remote, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.RemoteAddr = remote
		require.Equal(t, want, clientIP(req), remote)
	}
}
