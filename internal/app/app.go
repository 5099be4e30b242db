package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	goredis "github.com/redis/go-redis/v9"
	temporalsdkclient "go.temporal.io/sdk/client"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/bestway-backend/internal/clients/redis"
	"github.com/yungbote/bestway-backend/internal/data/db"
	httpx "github.com/yungbote/bestway-backend/internal/http"
	"github.com/yungbote/bestway-backend/internal/jobs"
	"github.com/yungbote/bestway-backend/internal/observability"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
	"github.com/yungbote/bestway-backend/internal/realtime/bus"
	"github.com/yungbote/bestway-backend/internal/temporalx/routegenwf"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *gorm.DB
	Redis    *goredis.Client
	Temporal temporalsdkclient.Client
	Hub      *realtime.SSEHub
	Bus      bus.Bus
	Repos    Repos

	serviceName string
	pg          *db.PostgresService
	asynqClient *asynq.Client
	otelDown    func(context.Context) error
}

// New builds everything both binaries share. serviceName tags traces and logs.
func New(ctx context.Context, serviceName string) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log = log.With("service", serviceName)

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	a := &App{Log: log, Cfg: cfg, serviceName: serviceName}
	a.otelDown = observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     observability.ParseHeaders(cfg.OtelHeaders),
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})

	if err := a.wireInfra(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wireInfra(ctx context.Context) error {
	pg, err := db.NewPostgresService(a.Log, db.PostgresConfig{DSN: a.Cfg.PostgresDSN})
	if err != nil {
		return fmt.Errorf("init postgres: %w", err)
	}
	a.pg = pg
	if err := pg.AutoMigrateAll(); err != nil {
		return fmt.Errorf("postgres automigrate: %w", err)
	}
	a.DB = pg.DB()

	rdb, err := redisclient.NewClient(a.Log, redisclient.Config{
		Addr:     a.Cfg.RedisAddr,
		Password: a.Cfg.RedisPassword,
		DB:       a.Cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	a.Redis = rdb

	a.Bus, err = bus.NewRedisBus(a.Log, rdb, a.Cfg.RealtimeChannel)
	if err != nil {
		return fmt.Errorf("init realtime bus: %w", err)
	}
	a.Hub = realtime.NewSSEHub(a.Log)

	a.Temporal, err = wireTemporal(ctx, a.Log, a.Cfg)
	if err != nil {
		return err
	}

	a.Repos = wireRepos(a.DB, a.Log)
	return nil
}

// RunAPI serves HTTP and relays bus events to local SSE subscribers until ctx ends.
func (a *App) RunAPI(ctx context.Context) error {
	svc, err := a.wireService()
	if err != nil {
		return err
	}
	if err := a.Bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
		return fmt.Errorf("start realtime forwarder: %w", err)
	}
	srv := httpx.NewServer(":"+a.Cfg.Port, a.routerConfig(svc))
	return srv.Run(ctx)
}

// RunWorker consumes generation jobs from the configured backend until ctx ends.
func (a *App) RunWorker(ctx context.Context) error {
	orch, err := a.wireOrchestrator()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	switch a.Cfg.JobBackend {
	case JobBackendTemporal:
		w, err := routegenwf.NewWorker(a.Log, a.Temporal, orch, routegenwf.WorkerConfig{
			TaskQueue:   a.Cfg.TemporalTaskQueue,
			Concurrency: a.Cfg.WorkerConcurrency,
			Workflow:    routegenwf.WorkflowOptions{ActivityTimeout: a.Cfg.ActivityTimeout()},
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(gctx) })
	default:
		srv := jobs.NewServer(a.Log, a.Cfg.asynqRedis(), jobs.ServerConfig{
			Concurrency: a.Cfg.WorkerConcurrency,
		}, jobs.NewServeMux(a.Log, orch, a.gate()))
		g.Go(func() error { return srv.Run(gctx) })
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	var errs []error
	if a.asynqClient != nil {
		errs = append(errs, a.asynqClient.Close())
	}
	if a.Temporal != nil {
		a.Temporal.Close()
	}
	if a.Bus != nil {
		errs = append(errs, a.Bus.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.pg != nil {
		errs = append(errs, a.pg.Close())
	}
	if a.otelDown != nil {
		errs = append(errs, a.otelDown(context.Background()))
	}
	if err := errors.Join(errs...); err != nil {
		a.Log.Warn("shutdown finished with errors", "error", err)
	}
	a.Log.Sync()
}
