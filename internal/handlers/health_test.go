package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) healthResponse {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}
	var resp healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Time.IsZero() {
		t.Fatal("expected response time to be populated")
	}
	return resp
}

func TestHealth(t *testing.T) {
	setupHandlers(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decodeHealth(t, w)
	if resp.Status != "ok" || resp.Database != "disabled" || resp.Recognition != "disabled" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestHealthPingsDatabase(t *testing.T) {
	db := newHandlersTestDB(t)
	setupHandlers(t, db, &fakeRecognizer{})

	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decodeHealth(t, w)
	if resp.Database != "ok" || resp.Recognition != "enabled" {
		t.Fatalf("unexpected health response: %+v", resp)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}
	sqlDB.Close()

	w = httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 after close, got %d", w.Code)
	}
	if resp := decodeHealth(t, w); resp.Status != "degraded" || resp.Database != "unavailable" {
		t.Fatalf("unexpected degraded response: %+v", resp)
	}
}
