package routegenwf

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

type WorkerConfig struct {
	TaskQueue   string
	Concurrency int
	Workflow    WorkflowOptions
}

type Worker struct {
	log *logger.Logger
	w   worker.Worker
	cfg WorkerConfig
}

func NewWorker(log *logger.Logger, tc temporalsdkclient.Client, runner routegen.Runner, cfg WorkerConfig) (*Worker, error) {
	if tc == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}
	w := worker.New(tc, cfg.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize:     cfg.Concurrency,
		MaxConcurrentWorkflowTaskExecutionSize: cfg.Concurrency,
	})
	Register(w, runner, cfg.Workflow)
	return &Worker{log: log.With("component", "TemporalWorker"), w: w, cfg: cfg}, nil
}

type registry interface {
	RegisterWorkflowWithOptions(w any, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a any, options activity.RegisterOptions)
}

// Register wires the workflow and its activity under their stable names.
func Register(r registry, runner routegen.Runner, opts WorkflowOptions) {
	acts := &Activities{Runner: runner}
	r.RegisterWorkflowWithOptions(NewWorkflow(opts), workflow.RegisterOptions{Name: WorkflowName})
	r.RegisterActivityWithOptions(acts.Generate, activity.RegisterOptions{Name: ActivityGenerate})
}

func (w *Worker) Run(ctx context.Context) error {
	if err := w.w.Start(); err != nil {
		return fmt.Errorf("start temporal worker: %w", err)
	}
	w.log.Info("Temporal worker started", "task_queue", w.cfg.TaskQueue, "concurrency", w.cfg.Concurrency)
	<-ctx.Done()
	w.w.Stop()
	w.log.Info("Temporal worker stopped")
	return nil
}
