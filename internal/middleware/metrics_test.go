package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type recordedRequest struct {
	method, route string
	status        int
}

type mockHTTPRecorder struct {
	requests []recordedRequest
}

func (m *mockHTTPRecorder) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	m.requests = append(m.requests, recordedRequest{method, route, statusCode})
}

func TestMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	rec := &mockHTTPRecorder{}

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(rec))
	r.Get("/api/contacts/{contactId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/contacts/42", nil))

	if len(rec.requests) != 1 {
		t.Fatalf("expected 1 recorded request, got %d", len(rec.requests))
	}
	got := rec.requests[0]
	want := recordedRequest{"GET", "/api/contacts/{contactId}", http.StatusNotFound}
	if got != want {
		t.Errorf("recorded %+v, want %+v", got, want)
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	rec := &mockHTTPRecorder{}
	handler := NewMetricsMiddleware(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(rec.requests) != 1 || rec.requests[0].route != unmatchedRoute {
		t.Errorf("recorded %+v, want route %q", rec.requests, unmatchedRoute)
	}
}
