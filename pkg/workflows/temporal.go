// Package workflows connects rentrobe to a Temporal cluster. The worker
// process uses it to run the rental maintenance sweeps; the API only checks
// that the cluster is reachable.
package workflows

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"

	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/logger"
)

const tracerName = "github.com/rentrobe/rentrobe/pkg/workflows"

// TemporalClient is a connected SDK client bound to one namespace.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	log       logger.Logger
}

// NewTemporalClient dials cfg.TemporalHostPort. Workflow starts and activity
// calls are traced with the global OTel tracer provider.
func NewTemporalClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer(tracerName),
	})
	if err != nil {
		return nil, fmt.Errorf("workflows: tracing interceptor: %w", err)
	}

	c, err := client.DialContext(ctx, client.Options{
		HostPort:     cfg.TemporalHostPort,
		Namespace:    cfg.TemporalNamespace,
		Identity:     identity(cfg.ServiceName),
		Logger:       newTemporalLogger(log),
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("workflows: dial %s: %w", cfg.TemporalHostPort, err)
	}

	log.Info("temporal connected", "host_port", cfg.TemporalHostPort, "namespace", cfg.TemporalNamespace)
	return &TemporalClient{Client: c, Namespace: cfg.TemporalNamespace, log: log}, nil
}

// Close releases the connection.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal connection closed")
}

// identity names this process in the Temporal UI's worker and history views.
func identity(service string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	if service == "" {
		service = "rentrobe"
	}
	return fmt.Sprintf("%s@%s:%d", service, host, os.Getpid())
}

// temporalLogger sends SDK log lines through logger.Logger tagged
// component=temporal.
type temporalLogger struct {
	log logger.Logger
}

var (
	_ temporallog.Logger     = (*temporalLogger)(nil)
	_ temporallog.WithLogger = (*temporalLogger)(nil)
)

func newTemporalLogger(log logger.Logger) *temporalLogger {
	return &temporalLogger{log: log.With("component", "temporal")}
}

func (l *temporalLogger) Debug(msg string, keyvals ...any) { l.log.Debug(msg, keyvals...) }
func (l *temporalLogger) Info(msg string, keyvals ...any)  { l.log.Info(msg, keyvals...) }
func (l *temporalLogger) Warn(msg string, keyvals ...any)  { l.log.Warn(msg, keyvals...) }
func (l *temporalLogger) Error(msg string, keyvals ...any) { l.log.Error(msg, keyvals...) }

// With binds keyvals, e.g. the workflow id the SDK attaches inside a workflow.
func (l *temporalLogger) With(keyvals ...any) temporallog.Logger {
	return &temporalLogger{log: l.log.With(keyvals...)}
}
