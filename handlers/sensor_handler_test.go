package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPing(t *testing.T) {
	h := NewSensorHandler(nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/data/ping", nil)
	rr := httptest.NewRecorder()
	h.Ping(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "alive" {
		t.Errorf("status = %q, want alive", body["status"])
	}
}

func TestGetServerTime(t *testing.T) {
	h := NewSensorHandler(nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/data/time", nil)
	rr := httptest.NewRecorder()
	h.GetServerTime(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["timestamp"] == 0 {
		t.Error("timestamp missing")
	}
}

func TestReceiveDataRequiresAuth(t *testing.T) {
	h := NewSensorHandler(nil, nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/data/receive", nil)
	rr := httptest.NewRecorder()
	h.ReceiveData(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without an authenticated identity", rr.Code)
	}
}
