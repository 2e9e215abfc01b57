package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything with a Ping: database.Database, cache.RedisClient,
// events.EventBus and workflows.TemporalClient.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks lists the dependencies /health probes. A nil field is skipped
// and omitted from the response only for Workflows.
type HealthChecks struct {
	Database  HealthChecker
	Redis     HealthChecker
	EventBus  HealthChecker
	Workflows HealthChecker
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	EventBus  string `json:"event_bus"`
	Workflows string `json:"workflows,omitempty"`
}

// HealthHandler pings every configured dependency in parallel, bounded by a
// 2s deadline. Any failure turns the response into 503 "degraded".
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		targets := []struct {
			checker HealthChecker
			result  *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
			{checks.Workflows, &resp.Workflows},
		}

		var g errgroup.Group
		for _, t := range targets {
			if t.checker == nil {
				continue
			}
			g.Go(func() error {
				*t.result = "ok"
				if err := t.checker.Ping(ctx); err != nil {
					*t.result = "unreachable"
				}
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		for _, t := range targets {
			if *t.result == "unreachable" {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
		JSON(w, status, resp)
	}
}
