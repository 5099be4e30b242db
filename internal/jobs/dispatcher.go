package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher puts generation jobs on the asynq queue. The task id is the
// generation id, so enqueueing the same job twice leaves one task.
type Dispatcher struct {
	log     *logger.Logger
	client  enqueuer
	timeout time.Duration
}

func NewDispatcher(log *logger.Logger, client enqueuer, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		log:     log.With("component", "AsynqDispatcher"),
		client:  client,
		timeout: timeout,
	}
}

func (d *Dispatcher) Enqueue(ctx context.Context, job routegen.Job) error {
	task, err := NewRouteGenerateTask(job)
	if err != nil {
		return err
	}
	opts := []asynq.Option{
		asynq.TaskID(job.GenerationID.String()),
		asynq.Queue(QueueRouteGen),
		// failures are terminal; the user retries by requesting again
		asynq.MaxRetry(0),
	}
	if d.timeout > 0 {
		opts = append(opts, asynq.Timeout(d.timeout))
	}

	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		d.log.Info("generation task already enqueued", "generation_id", job.GenerationID)
		return nil
	}
	if err != nil {
		return err
	}
	d.log.Debug("generation task enqueued", "task_id", info.ID, "queue", info.Queue)
	return nil
}

var _ routegen.Dispatcher = (*Dispatcher)(nil)
