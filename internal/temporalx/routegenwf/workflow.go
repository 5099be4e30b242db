package routegenwf

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/yungbote/bestway-backend/internal/routegen"
)

const (
	WorkflowName     = "route_generation"
	ActivityGenerate = "route_generation_run"
)

// Result is what the workflow records on success.
type Result struct {
	RouteID int64 `json:"route_id"`
	Places  int   `json:"places"`
}

type WorkflowOptions struct {
	// ActivityTimeout must cover pacing, every provider attempt and persistence.
	ActivityTimeout time.Duration
}

// NewWorkflow returns the workflow function. It runs the generation exactly
// once; a failed generation is terminal.
func NewWorkflow(opts WorkflowOptions) func(ctx workflow.Context, job routegen.Job) (Result, error) {
	timeout := opts.ActivityTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return func(ctx workflow.Context, job routegen.Job) (Result, error) {
		ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: timeout,
			RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
		})
		var out Result
		if err := workflow.ExecuteActivity(ctx, ActivityGenerate, job).Get(ctx, &out); err != nil {
			return Result{}, err
		}
		return out, nil
	}
}
