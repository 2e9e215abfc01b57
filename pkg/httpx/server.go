package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	// MaxRequestBody caps JSON request bodies. The API takes no uploads.
	MaxRequestBody = 1 << 20

	defaultRequestsPerMinute  = 100
	defaultMutationsPerMinute = 30
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
	// Per-IP limits. Zero selects the defaults (100 and 30 per minute).
	RequestsPerMinute  int
	MutationsPerMinute int
}

// NewRouter returns a chi.Mux with the API middleware stack. The
// app-specific middlewares are passed in and run outermost.
//
// Order (outermost first): recovery, sentry, request id, otel, request log,
// real ip, per-IP limit, mutation limit, CORS, body cap, 30s timeout,
// security headers.
func NewRouter(
	cfg ServerConfig,
	loggerMiddleware func(http.Handler) http.Handler,
	recoveryMiddleware func(http.Handler) http.Handler,
	sentryMiddleware func(http.Handler) http.Handler,
	otelMiddleware func(http.Handler) http.Handler,
) *chi.Mux {
	sec := secure.New(secure.Options{
		STSSeconds:           63072000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		// The swagger UI under /swagger needs inline scripts and styles.
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), payment=()",
		IsDevelopment:         cfg.IsDevelopment,
	})

	r := chi.NewRouter()
	r.Use(
		recoveryMiddleware,
		sentryMiddleware,
		middleware.RequestID,
		otelMiddleware,
		loggerMiddleware,
		middleware.RealIP,
		httprate.LimitByIP(orDefault(cfg.RequestsPerMinute, defaultRequestsPerMinute), time.Minute),
		MutationRateLimit(orDefault(cfg.MutationsPerMinute, defaultMutationsPerMinute), time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(MaxRequestBody),
		middleware.Timeout(30*time.Second),
		sec.Handler,
	)
	return r
}

// MutationRateLimit limits POST, PUT, PATCH and DELETE requests per IP.
// Reads pass through untouched.
func MutationRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	limiter := httprate.LimitByIP(limit, window)
	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}

// CORSMiddleware returns a CORS handler for the given origins. With explicit
// origins, credentials are allowed so browsers send the session cookie; the
// "*" wildcard (development) cannot carry credentials.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Ratelimit-Remaining"},
		AllowCredentials: !wildcard,
		MaxAge:           600,
	})
}

func parseOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps the request body at maxBytes. Reads past the cap
// fail with *http.MaxBytesError, which DecodeJSON reports as 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server with read, write and idle timeouts set.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       90 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
