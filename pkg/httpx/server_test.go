package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rentrobe/rentrobe/pkg/httpx"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(cfg httpx.ServerConfig) http.Handler {
	r := httpx.NewRouter(cfg, passthrough, passthrough, passthrough, passthrough)
	r.Get("/items", okHandler)
	r.Post("/rentals", okHandler)
	return r
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{CORSAllowedOrigins: "https://rentrobe.example"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	checks := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, expected := range checks {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("%s: got %q, want %q", header, got, expected)
		}
	}
	if csp := rr.Header().Get("Content-Security-Policy"); !strings.HasPrefix(csp, "default-src 'self'") {
		t.Errorf("unexpected Content-Security-Policy %q", csp)
	}
}

func TestCORSMiddleware_Credentials(t *testing.T) {
	tests := []struct {
		name        string
		origins     string
		origin      string
		wantAllow   string
		wantCookies string
	}{
		{"explicit origin carries cookies", "https://rentrobe.example, https://admin.rentrobe.example", "https://admin.rentrobe.example", "https://admin.rentrobe.example", "true"},
		{"unknown origin refused", "https://rentrobe.example", "https://evil.example", "", ""},
		{"wildcard without credentials", "*", "http://localhost:3000", "*", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.CORSMiddleware(tt.origins)(http.HandlerFunc(okHandler))
			r := httptest.NewRequest(http.MethodGet, "/items", http.NoBody)
			r.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin: got %q, want %q", got, tt.wantAllow)
			}
			if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCookies {
				t.Errorf("Allow-Credentials: got %q, want %q", got, tt.wantCookies)
			}
		})
	}
}

func TestMutationRateLimit(t *testing.T) {
	h := httpx.MutationRateLimit(2, time.Minute)(http.HandlerFunc(okHandler))

	send := func(method string) int {
		r := httptest.NewRequest(method, "/rentals", http.NoBody)
		r.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return rr.Code
	}

	for i := 0; i < 2; i++ {
		if code := send(http.MethodPost); code != http.StatusOK {
			t.Fatalf("POST %d: expected 200, got %d", i+1, code)
		}
	}
	if code := send(http.MethodPut); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the mutation budget is spent, got %d", code)
	}
	for i := 0; i < 5; i++ {
		if code := send(http.MethodGet); code != http.StatusOK {
			t.Fatalf("GET should not be limited, got %d", code)
		}
	}
}

func TestRequestBodyLimit(t *testing.T) {
	const limit int64 = 10

	tests := []struct {
		name     string
		size     int
		wantCode int
	}{
		{"within limit", 5, http.StatusOK},
		{"exceeds limit", int(limit) + 1, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.ReadAll(r.Body); err != nil {
					http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			})

			h := httpx.RequestBodyLimit(limit)(inner)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", tt.size))))

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
		})
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := httpx.NewServer(":0", http.HandlerFunc(okHandler))
	if srv.ReadHeaderTimeout == 0 || srv.WriteTimeout <= 30*time.Second {
		t.Fatalf("unexpected timeouts: header=%s write=%s", srv.ReadHeaderTimeout, srv.WriteTimeout)
	}
}
