package logger

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rentrobe/rentrobe/pkg/httpx"
)

// quietPaths are polled by probes and scrapers; their requests log at debug.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Middleware logs one line per request after it completes. The line carries
// the chi route pattern (e.g. /api/rentals/{id}/status) next to the raw path.
// 5xx responses log at error, 4xx at info since refused bookings are routine.
func Middleware(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			logAt(r.Context(), log, requestLevel(r.URL.Path, status), "request", args...)
		})
	}
}

// Recovery turns a panic into a logged stack trace and a JSON 500 in the
// same shape as every other API error.
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					"error", rec,
					"route", routePattern(r),
					"stack", string(debug.Stack()),
				)
				httpx.JSONErrorCode(w, http.StatusInternalServerError, "internal server error", "internal")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case quietPaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func logAt(ctx context.Context, log Logger, level slog.Level, msg string, args ...any) {
	switch level {
	case slog.LevelError:
		log.ErrorContext(ctx, msg, args...)
	case slog.LevelDebug:
		log.DebugContext(ctx, msg, args...)
	default:
		log.InfoContext(ctx, msg, args...)
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
