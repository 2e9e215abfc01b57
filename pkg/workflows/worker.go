package workflows

import (
	"context"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// Registrar registers workflows and activities on a worker.
type Registrar interface {
	Register(w worker.Registry)
}

// StartWorker creates a worker polling taskQueue, lets each registrar add its
// workflows and activities, and starts polling. Stop the returned worker on
// shutdown.
func (tc *TemporalClient) StartWorker(taskQueue string, registrars ...Registrar) (worker.Worker, error) {
	w := worker.New(tc.Client, taskQueue, worker.Options{})
	for _, r := range registrars {
		r.Register(w)
	}
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("start temporal worker on %s: %w", taskQueue, err)
	}
	tc.log.Info("temporal worker started", "task_queue", taskQueue)
	return w, nil
}

// EnsureCron starts a cron workflow with a fixed ID. A workflow already
// running under that ID is left alone, so every worker replica may call this.
func (tc *TemporalClient) EnsureCron(ctx context.Context, id, taskQueue, schedule string, workflow any, args ...any) error {
	_, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                    id,
		TaskQueue:             taskQueue,
		CronSchedule:          schedule,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, workflow, args...)
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if err != nil && !errors.As(err, &started) {
		return fmt.Errorf("start cron workflow %s: %w", id, err)
	}
	tc.log.Info("cron workflow scheduled", "workflow_id", id, "schedule", schedule)
	return nil
}

// Ping reports whether the Temporal frontend is reachable.
func (tc *TemporalClient) Ping(ctx context.Context) error {
	if _, err := tc.Client.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		return fmt.Errorf("temporal health: %w", err)
	}
	return nil
}
