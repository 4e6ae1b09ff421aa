package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	key := "203.0.113.1"

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow(key) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow(key) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	ip1 := "203.0.113.1"
	ip2 := "203.0.113.2"

	// Exhaust ip1's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(ip1) {
			t.Errorf("ip1 request %d should be allowed", i+1)
		}
	}

	// ip1 should be rate limited
	if rl.Allow(ip1) {
		t.Error("ip1 should be rate limited")
	}

	// ip2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(ip2) {
			t.Errorf("ip2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_RateLimitsByIP(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2) // small burst for testing
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	newRequest := func() echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec)
	}

	// First 2 requests should succeed (burst)
	for i := 0; i < 2; i++ {
		c := newRequest()
		err := RateLimitMiddleware(rl)(handler)(c)
		if err != nil {
			t.Fatalf("Request %d: expected no error, got %v", i+1, err)
		}
		rec := c.Response().Writer.(*httptest.ResponseRecorder)
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") == "" {
			t.Errorf("Request %d: expected X-RateLimit-Limit header", i+1)
		}
	}

	// 3rd request should be rate limited
	c := newRequest()
	err := RateLimitMiddleware(rl)(handler)(c)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}
