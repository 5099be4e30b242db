package app

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/yungbote/bestway-backend/internal/jobs"
	"github.com/yungbote/bestway-backend/internal/routegen"
	"github.com/yungbote/bestway-backend/internal/temporalx/routegenwf"
)

func (a *App) gate() routegen.Gate {
	return routegen.NewRedisGate(a.Log, a.Redis, a.Cfg.LockTTL())
}

func (a *App) quota() routegen.QuotaTracker {
	if a.Cfg.QuotaScope == QuotaScopeLocal {
		return routegen.NewLocalQuota(a.Cfg.MaxResponsesPerDay, time.Now)
	}
	return routegen.NewSharedQuota(a.Log, a.Redis, a.Cfg.MaxResponsesPerDay, time.Now)
}

// wireDispatcher picks the queue the API enqueues onto.
func (a *App) wireDispatcher() (routegen.Dispatcher, error) {
	switch a.Cfg.JobBackend {
	case JobBackendTemporal:
		if a.Temporal == nil {
			return nil, fmt.Errorf("temporal client is not configured")
		}
		return routegenwf.NewDispatcher(a.Log, a.Temporal, a.Cfg.TemporalTaskQueue), nil
	default:
		a.asynqClient = asynq.NewClient(a.Cfg.asynqRedis())
		return jobs.NewDispatcher(a.Log, a.asynqClient, a.Cfg.ActivityTimeout()), nil
	}
}

func (a *App) wireService() (*routegen.Service, error) {
	dispatcher, err := a.wireDispatcher()
	if err != nil {
		return nil, err
	}
	return routegen.NewService(a.Log, a.gate(), dispatcher), nil
}

func (a *App) wireOrchestrator() (*routegen.Orchestrator, error) {
	transport, err := wireOpenAI(a.Log, a.Cfg)
	if err != nil {
		return nil, fmt.Errorf("init provider client: %w", err)
	}
	prompts, err := loadPrompts(a.Log, a.Cfg.PromptsFile)
	if err != nil {
		return nil, err
	}
	generator := routegen.NewProviderClient(a.Log, transport, a.quota(), prompts, routegen.GeneratorConfig{
		RequestDelay: a.Cfg.ChatGPTRequestDelay,
		MaxAttempts:  a.Cfg.ChatGPTMaxRetries,
		RetryDelay:   a.Cfg.ChatGPTRetryDelay,
	})
	r := a.Repos
	return routegen.NewOrchestrator(a.Log,
		a.gate(),
		routegen.NewAggregator(a.Log, r.User, r.Survey, r.Place),
		generator,
		routegen.NewProposalValidator(a.Log),
		routegen.NewPersister(a.DB, a.Log, r.Survey, r.Place, r.Route, r.RoutePlace),
		routegen.NewBusNotifier(a.Log, a.Bus, a.Cfg.NotifyTimeout),
	), nil
}
