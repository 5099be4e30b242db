package routegen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/bestway-backend/internal/domain"
)

// Job is the typed payload handed from the request path to a worker.
// GenerationID doubles as the dedup key for queue redelivery.
type Job struct {
	GenerationID uuid.UUID             `json:"generation_id"`
	UserID       int64                 `json:"user_id"`
	SurveyID     int64                 `json:"survey_id"`
	Mode         domain.GenerationMode `json:"mode"`
	RequestedAt  time.Time             `json:"requested_at"`
}

// LockOwner is the value stored in the user's admission lock for this job.
func (j Job) LockOwner() string { return j.GenerationID.String() }

// Dispatcher enqueues a job without waiting for it to run.
type Dispatcher interface {
	Enqueue(ctx context.Context, job Job) error
}

// Runner executes one job to completion. Implemented by Orchestrator.
type Runner interface {
	Run(ctx context.Context, job Job) (*domain.Route, error)
}

type Stage string

const (
	StageStarted         Stage = "started"
	StageAggregating     Stage = "aggregating"
	StageCallingProvider Stage = "calling_provider"
	StageValidating      Stage = "validating"
	StagePersisting      Stage = "persisting"
	StageSucceeded       Stage = "succeeded"
	StageFailed          Stage = "failed"
)
