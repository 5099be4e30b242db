package routegenwf

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

type fakeRunner struct {
	calls int
	err   error
}

func (r *fakeRunner) Run(ctx context.Context, job routegen.Job) (*domain.Route, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Route{
		ID:       77,
		AuthorID: job.UserID,
		Places:   []domain.RoutePlace{{PlaceID: 1, Order: 1}, {PlaceID: 2, Order: 2}},
	}, nil
}

func testJob() routegen.Job {
	return routegen.Job{GenerationID: uuid.New(), UserID: 6, SurveyID: 3, Mode: domain.GenerationModeFull}
}

func TestWorkflowSucceeds(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	runner := &fakeRunner{}
	Register(env, runner, WorkflowOptions{})

	env.ExecuteWorkflow(WorkflowName, testJob())
	if !env.IsWorkflowCompleted() {
		t.Fatalf("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}
	var res Result
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatalf("GetWorkflowResult: %v", err)
	}
	if res.RouteID != 77 || res.Places != 2 {
		t.Fatalf("result: got=%+v", res)
	}
}

func TestWorkflowFailureIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	runner := &fakeRunner{err: routegen.ErrProviderRateLimited}
	Register(env, runner, WorkflowOptions{})

	env.ExecuteWorkflow(WorkflowName, testJob())
	err := env.GetWorkflowError()
	if err == nil {
		t.Fatalf("workflow error: want failure")
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("want ApplicationError in chain, got=%v", err)
	}
	if appErr.Type() != routegen.KindProviderRateLimited.String() || !appErr.NonRetryable() {
		t.Fatalf("application error: type=%s non_retryable=%v", appErr.Type(), appErr.NonRetryable())
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls: want=1 got=%d", runner.calls)
	}
}

type fakeRun struct {
	temporalsdkclient.WorkflowRun
	id string
}

func (r fakeRun) GetID() string    { return r.id }
func (r fakeRun) GetRunID() string { return "run-1" }

type fakeStarter struct {
	started []temporalsdkclient.StartWorkflowOptions
	args    []any
	err     error
}

func (s *fakeStarter) ExecuteWorkflow(ctx context.Context, opts temporalsdkclient.StartWorkflowOptions, wf any, args ...any) (temporalsdkclient.WorkflowRun, error) {
	for _, o := range s.started {
		if o.ID == opts.ID {
			return nil, &serviceerror.WorkflowExecutionAlreadyStarted{Message: "already started"}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	s.started = append(s.started, opts)
	s.args = append(s.args, args...)
	return fakeRun{id: opts.ID}, nil
}

func TestDispatcherStartsOneWorkflowPerGeneration(t *testing.T) {
	starter := &fakeStarter{}
	d := NewDispatcher(logger.NewNop(), starter, "bestway-routegen")
	job := testJob()

	for i := 0; i < 2; i++ {
		if err := d.Enqueue(context.Background(), job); err != nil {
			t.Fatalf("Enqueue #%d: %v", i+1, err)
		}
	}
	if len(starter.started) != 1 {
		t.Fatalf("workflows: want=1 got=%d", len(starter.started))
	}
	opts := starter.started[0]
	if opts.ID != "route-generation-"+job.GenerationID.String() {
		t.Fatalf("workflow id: got=%s", opts.ID)
	}
	if opts.TaskQueue != "bestway-routegen" {
		t.Fatalf("task queue: got=%s", opts.TaskQueue)
	}
	if opts.WorkflowIDReusePolicy != enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE {
		t.Fatalf("reuse policy: got=%v", opts.WorkflowIDReusePolicy)
	}
	if got, ok := starter.args[0].(routegen.Job); !ok || got.GenerationID != job.GenerationID {
		t.Fatalf("workflow arg: got=%#v", starter.args[0])
	}
}

func TestDispatcherPropagatesStartErrors(t *testing.T) {
	d := NewDispatcher(logger.NewNop(), &fakeStarter{err: errors.New("unavailable")}, "q")
	if err := d.Enqueue(context.Background(), testJob()); err == nil {
		t.Fatalf("Enqueue: want error")
	}
}
