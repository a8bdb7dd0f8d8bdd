package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitBurst(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	limited := false
	for i := 0; i < burstSize+10; i++ {
		req := httptest.NewRequest("GET", "/api/v1/data/ping", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Error("expected the burst to be rate limited")
	}

	// a different client is unaffected
	req := httptest.NewRequest("GET", "/api/v1/data/ping", nil)
	req.RemoteAddr = "10.9.9.9:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("fresh client got %d, want 200", rr.Code)
	}
}
