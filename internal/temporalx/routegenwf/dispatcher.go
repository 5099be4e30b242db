package routegenwf

import (
	"context"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

func WorkflowID(job routegen.Job) string {
	return "route-generation-" + job.GenerationID.String()
}

type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options temporalsdkclient.StartWorkflowOptions, workflow any, args ...any) (temporalsdkclient.WorkflowRun, error)
}

// Dispatcher starts one workflow per generation. A second start for the same
// generation id is rejected by Temporal and treated as already enqueued.
type Dispatcher struct {
	log       *logger.Logger
	client    workflowStarter
	taskQueue string
}

func NewDispatcher(log *logger.Logger, client workflowStarter, taskQueue string) *Dispatcher {
	return &Dispatcher{log: log.With("component", "TemporalDispatcher"), client: client, taskQueue: taskQueue}
}

func (d *Dispatcher) Enqueue(ctx context.Context, job routegen.Job) error {
	opts := temporalsdkclient.StartWorkflowOptions{
		ID:                                       WorkflowID(job),
		TaskQueue:                                d.taskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := d.client.ExecuteWorkflow(ctx, opts, WorkflowName, job)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			d.log.Info("generation workflow already started", "workflow_id", opts.ID)
			return nil
		}
		return fmt.Errorf("start workflow %s: %w", opts.ID, err)
	}
	d.log.Debug("generation workflow started", "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return nil
}

var _ routegen.Dispatcher = (*Dispatcher)(nil)
