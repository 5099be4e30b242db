package routegen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

// Service is the request-path entry point: admission and enqueue only.
type Service struct {
	log        *logger.Logger
	gate       Gate
	dispatcher Dispatcher
	now        func() time.Time
	newID      func() uuid.UUID
}

func NewService(log *logger.Logger, gate Gate, dispatcher Dispatcher) *Service {
	return &Service{
		log:        log.With("component", "RouteGenerationService"),
		gate:       gate,
		dispatcher: dispatcher,
		now:        time.Now,
		newID:      uuid.New,
	}
}

// Start admits the request and enqueues a job. A second request while the
// user's generation is in flight fails with KindAdmissionConflict.
func (s *Service) Start(ctx context.Context, userID, surveyID int64, mode domain.GenerationMode) (Job, error) {
	const op = "start_generation"
	if userID <= 0 || surveyID <= 0 {
		return Job{}, newError(KindInvalidInput, op, nil, "user and survey ids must be positive")
	}
	if mode != domain.GenerationModeFull && mode != domain.GenerationModePartial {
		return Job{}, newError(KindInvalidInput, op, nil, "unknown mode %q", mode)
	}

	job := Job{
		GenerationID: s.newID(),
		UserID:       userID,
		SurveyID:     surveyID,
		Mode:         mode,
		RequestedAt:  s.now().UTC(),
	}
	ok, err := s.gate.TryAcquire(ctx, userID, job.LockOwner())
	if err != nil {
		return Job{}, newError(KindInternal, op, err, "")
	}
	if !ok {
		return Job{}, newError(KindAdmissionConflict, op, nil, "user already has an active route generation")
	}

	if err := s.dispatcher.Enqueue(ctx, job); err != nil {
		if relErr := s.gate.Release(context.WithoutCancel(ctx), userID, job.LockOwner()); relErr != nil {
			s.log.Error("release after failed enqueue", "user", userID, "error", relErr)
		}
		s.log.Error("enqueue route generation failed", "user", userID, "survey", surveyID, "error", err)
		return Job{}, newError(KindInternal, op, err, "enqueue")
	}
	s.log.Info("route generation enqueued",
		"generation_id", job.GenerationID,
		"user", userID,
		"survey", surveyID,
		"mode", mode,
	)
	return job, nil
}

func (s *Service) IsActive(ctx context.Context, userID int64) (bool, error) {
	return s.gate.IsActive(ctx, userID)
}
