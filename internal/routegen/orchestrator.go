package routegen

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
)

type ProposalChecker interface {
	Validate(raw map[string]any, authorID int64) (RouteProposal, error)
}

type Orchestrator struct {
	log       *logger.Logger
	gate      Gate
	content   ContentBuilder
	generator Generator
	validator ProposalChecker
	store     RouteStore
	notifier  Notifier
	tracer    trace.Tracer

	releaseTimeout time.Duration
}

func NewOrchestrator(
	log *logger.Logger,
	gate Gate,
	content ContentBuilder,
	generator Generator,
	validator ProposalChecker,
	store RouteStore,
	notifier Notifier,
) *Orchestrator {
	return &Orchestrator{
		log:            log.With("component", "GenerationOrchestrator"),
		gate:           gate,
		content:        content,
		generator:      generator,
		validator:      validator,
		store:          store,
		notifier:       notifier,
		tracer:         otel.Tracer("bestway/routegen"),
		releaseTimeout: 5 * time.Second,
	}
}

// Run drives one job through aggregation, generation, validation and
// persistence. The user's admission lock is released on every exit path.
func (o *Orchestrator) Run(ctx context.Context, job Job) (route *domain.Route, err error) {
	ctx, span := o.tracer.Start(ctx, "routegen.generate", trace.WithAttributes(
		attribute.String("generation.id", job.GenerationID.String()),
		attribute.Int64("user.id", job.UserID),
		attribute.Int64("survey.id", job.SurveyID),
		attribute.String("generation.mode", string(job.Mode)),
	))
	log := o.log.With(
		"generation_id", job.GenerationID,
		"user", job.UserID,
		"survey", job.SurveyID,
		"mode", job.Mode,
	)
	started := time.Now()
	stage := StageStarted

	defer func() {
		if r := recover(); r != nil {
			route = nil
			err = newError(KindInternal, "orchestrator", fmt.Errorf("panic: %v", r), "stage %s", stage)
		}
		if err != nil {
			o.fail(ctx, log, job, stage, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, KindOf(err).String())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		o.release(ctx, log, job)
		span.End()
	}()

	if err := o.claim(ctx, log, job); err != nil {
		return nil, err
	}

	o.notifier.NotifyUser(ctx, job.UserID, GenerationEvent{
		Type:         realtime.SSEEventRouteGenerationStarted,
		GenerationID: job.GenerationID.String(),
	})
	log.Info("route generation started")

	stage = o.enter(span, StageAggregating)
	content, err := o.content.Build(ctx, job.UserID, job.SurveyID)
	if err != nil {
		return nil, err
	}

	stage = o.enter(span, StageCallingProvider)
	raw, err := o.generator.Generate(ctx, content, job.Mode)
	if err != nil {
		return nil, err
	}

	stage = o.enter(span, StageValidating)
	proposal, err := o.validator.Validate(raw, job.UserID)
	if err != nil {
		return nil, err
	}

	stage = o.enter(span, StagePersisting)
	route, err = o.store.Persist(ctx, proposal, job.SurveyID, job.GenerationID)
	if err != nil {
		return nil, err
	}

	stage = o.enter(span, StageSucceeded)
	o.notifier.NotifyUser(ctx, job.UserID, GenerationEvent{
		Type:         realtime.SSEEventRouteGenerationSucceeded,
		GenerationID: job.GenerationID.String(),
		Data:         route,
	})
	log.Info("route generation succeeded",
		"route", route.ID,
		"places", len(route.Places),
		"elapsed", time.Since(started).String(),
	)
	return route, nil
}

func (o *Orchestrator) enter(span trace.Span, s Stage) Stage {
	span.AddEvent(string(s))
	return s
}

func (o *Orchestrator) fail(ctx context.Context, log *logger.Logger, job Job, stage Stage, err error) {
	kind := KindOf(err)
	kv := []any{"stage", stage, "kind", kind.String(), "error", err}
	if raw := RawPayload(err); raw != "" {
		kv = append(kv, "raw", raw)
	}
	if kind.Expected() {
		log.Warn("route generation failed", kv...)
	} else {
		log.Error("route generation failed", kv...)
	}
	o.notifier.NotifyUser(ctx, job.UserID, GenerationEvent{
		Type:         realtime.SSEEventRouteGenerationFailed,
		GenerationID: job.GenerationID.String(),
		Error:        kind.PublicCode(),
	})
}

// claim resets the lock ttl now that the job is running, so queue wait does not
// eat into the generation's budget. A lock held by another generation means this
// job was superseded and must not run.
func (o *Orchestrator) claim(ctx context.Context, log *logger.Logger, job Job) error {
	ok, err := o.gate.Refresh(ctx, job.UserID, job.LockOwner())
	if err != nil {
		log.Warn("refreshing generation lock failed", "error", err)
		return nil
	}
	if !ok {
		return newError(KindAdmissionConflict, "claim_lock", nil, "another generation owns the user's lock")
	}
	return nil
}

func (o *Orchestrator) release(ctx context.Context, log *logger.Logger, job Job) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.releaseTimeout)
	defer cancel()
	if err := o.gate.Release(rctx, job.UserID, job.LockOwner()); err != nil {
		// the lock ttl still frees the user eventually
		log.Error("releasing generation lock failed", "error", err)
	}
}
