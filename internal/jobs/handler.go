package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/tidwall/gjson"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

// LockReleaser frees a user's admission lock on behalf of its owning generation.
type LockReleaser interface {
	Release(ctx context.Context, userID int64, owner string) error
}

type RouteGenerateHandler struct {
	log    *logger.Logger
	runner routegen.Runner
	locks  LockReleaser
}

func NewRouteGenerateHandler(log *logger.Logger, runner routegen.Runner, locks LockReleaser) *RouteGenerateHandler {
	return &RouteGenerateHandler{log: log.With("component", "RouteGenerateHandler"), runner: runner, locks: locks}
}

// ProcessTask runs one generation. Errors are wrapped in asynq.SkipRetry:
// the orchestrator has already reported the failure to the user.
func (h *RouteGenerateHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	job, err := ParseRouteGeneratePayload(t)
	if err != nil {
		h.log.Error("dropping undecodable task", "type", t.Type(), "error", err)
		h.releaseUndecodable(ctx, t.Payload())
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	taskID, _ := asynq.GetTaskID(ctx)
	route, err := h.runner.Run(ctx, job)
	if err != nil {
		return fmt.Errorf("generation %s: %v: %w", job.GenerationID, err, asynq.SkipRetry)
	}
	h.log.Debug("generation task done", "task_id", taskID, "route", route.ID)
	return nil
}

// releaseUndecodable frees the lock of a task that will never run, when the
// payload still names its user and generation.
func (h *RouteGenerateHandler) releaseUndecodable(ctx context.Context, payload []byte) {
	if h.locks == nil || !gjson.ValidBytes(payload) {
		return
	}
	userID := gjson.GetBytes(payload, "user_id").Int()
	genID, err := uuid.Parse(gjson.GetBytes(payload, "generation_id").String())
	if userID <= 0 || err != nil {
		return
	}
	job := routegen.Job{GenerationID: genID, UserID: userID}
	if err := h.locks.Release(context.WithoutCancel(ctx), userID, job.LockOwner()); err != nil {
		h.log.Warn("releasing lock of dropped task failed", "user", userID, "error", err)
		return
	}
	h.log.Info("released lock of dropped task", "user", userID, "generation_id", genID)
}

func NewServeMux(log *logger.Logger, runner routegen.Runner, locks LockReleaser) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeRouteGenerate, NewRouteGenerateHandler(log, runner, locks))
	return mux
}
