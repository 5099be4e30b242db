package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type ServerConfig struct {
	Concurrency int
}

// Server consumes the routegen queue until its context is cancelled.
type Server struct {
	log *logger.Logger
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewServer(log *logger.Logger, redis asynq.RedisConnOpt, cfg ServerConfig, mux *asynq.ServeMux) *Server {
	log = log.With("component", "AsynqServer")
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 4
	}
	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueRouteGen: 1},
		Logger:      asynqLogger{log: log},
		LogLevel:    asynq.InfoLevel,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
			id, _ := asynq.GetTaskID(ctx)
			log.Debug("task finished with error", "type", t.Type(), "task_id", id, "error", err)
		}),
	})
	return &Server{log: log, srv: srv, mux: mux}
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.srv.Start(s.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	s.log.Info("asynq worker started", "queue", QueueRouteGen)
	<-ctx.Done()
	s.srv.Shutdown()
	s.log.Info("asynq worker stopped")
	return nil
}

// asynqLogger adapts the structured logger to asynq's variadic interface.
type asynqLogger struct{ log *logger.Logger }

func (l asynqLogger) Debug(args ...any) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.log.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.log.Fatal(fmt.Sprint(args...)) }
