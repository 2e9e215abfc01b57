package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RequestFields(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(log))
	r.Get("/api/rentals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/rentals/42", http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := parseLastLine(t, &buf)
	require.Contains(t, entry, "request_id")
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/api/rentals/42", entry["path"])
	require.Equal(t, "/api/rentals/{id}", entry["route"])
	require.EqualValues(t, http.StatusOK, entry["status"])
	require.EqualValues(t, len(`{"ok":true}`), entry["bytes"])
	require.Contains(t, entry, "latency_ms")
}

func TestMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		level  string
	}{
		{"success", "/api/items", http.StatusOK, "INFO"},
		{"refused booking", "/api/items", http.StatusConflict, "INFO"},
		{"server error", "/api/items", http.StatusInternalServerError, "ERROR"},
		{"health probe", "/health", http.StatusOK, "DEBUG"},
		{"failing health probe", "/health", http.StatusServiceUnavailable, "ERROR"},
		{"metrics scrape", "/metrics", http.StatusOK, "DEBUG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := Middleware(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			entry := parseLastLine(t, &buf)
			require.Equal(t, tt.level, entry["level"])
			require.EqualValues(t, tt.status, entry["status"])
		})
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	h := Middleware(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/categories", http.NoBody))

	entry := parseLastLine(t, &buf)
	require.EqualValues(t, http.StatusOK, entry["status"])
}

func TestRecovery_WritesJSONError(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	r := chi.NewRouter()
	r.Use(Recovery(log))
	r.Post("/api/rentals", func(http.ResponseWriter, *http.Request) {
		panic("nil catalog client")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rentals", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal", body["code"])
	require.Equal(t, "internal server error", body["error"])

	entry := parseLastLine(t, &buf)
	require.Equal(t, "panic recovered", entry["msg"])
	require.Equal(t, "nil catalog client", entry["error"])
	require.Equal(t, "/api/rentals", entry["route"])
	require.NotEmpty(t, entry["stack"])
}

func TestRecovery_RepanicsOnAbort(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
	require.Zero(t, buf.Len())
}
