// Package workflows holds the rental context's scheduled Temporal workflows.
package workflows

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

const (
	// ExpireStalePendingName is the registered workflow type.
	ExpireStalePendingName = "rental.ExpireStalePending"
	// ExpireStalePendingCronID is the fixed workflow ID of the daily sweep.
	ExpireStalePendingCronID = "rental-expire-stale-pending"
)

// Expirer cancels pending rentals that were never answered before their start date.
type Expirer interface {
	ExpireStalePending(ctx context.Context, today time.Time) (int, error)
}

// ExpireInput is the calendar day the sweep runs for, as YYYY-MM-DD.
type ExpireInput struct {
	Today string `json:"today"`
}

// ExpireResult reports how many rentals the sweep cancelled.
type ExpireResult struct {
	Today   string `json:"today"`
	Expired int    `json:"expired"`
}

// Activities wraps the booking engine for use from workflows.
type Activities struct {
	rentals Expirer
}

func NewActivities(rentals Expirer) *Activities {
	return &Activities{rentals: rentals}
}

// ExpireStalePending runs one sweep. Already cancelled rentals are skipped, so
// a retried attempt only finishes what the previous one left.
func (a *Activities) ExpireStalePending(ctx context.Context, in ExpireInput) (ExpireResult, error) {
	today, err := models.ParseDate(in.Today)
	if err != nil {
		return ExpireResult{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("invalid sweep date %q", in.Today), "InvalidDate", err)
	}
	n, err := a.rentals.ExpireStalePending(ctx, today)
	activity.GetLogger(ctx).Info("stale pending sweep finished", "today", in.Today, "expired", n)
	return ExpireResult{Today: in.Today, Expired: n}, err
}

// ExpireStalePendingWorkflow cancels pending rentals whose start date has
// passed. The day is taken from workflow time so replays are deterministic.
func ExpireStalePendingWorkflow(ctx workflow.Context) (ExpireResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    3,
		},
	})

	in := ExpireInput{Today: workflow.Now(ctx).UTC().Format(models.DateLayout)}
	var a *Activities
	var res ExpireResult
	if err := workflow.ExecuteActivity(ctx, a.ExpireStalePending, in).Get(ctx, &res); err != nil {
		return ExpireResult{Today: in.Today}, err
	}
	workflow.GetLogger(ctx).Info("stale pending rentals expired", "today", res.Today, "expired", res.Expired)
	return res, nil
}

// Registrar adds the rental workflows and activities to a worker.
type Registrar struct {
	Activities *Activities
}

func (r Registrar) Register(w worker.Registry) {
	w.RegisterWorkflowWithOptions(ExpireStalePendingWorkflow, workflow.RegisterOptions{Name: ExpireStalePendingName})
	w.RegisterActivity(r.Activities)
}
