package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hibiken/asynq"
	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/bestway-backend/internal/clients/openai"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
	"github.com/yungbote/bestway-backend/internal/temporalx"
)

func (c Config) asynqRedis() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

func (c Config) temporal() temporalx.Config {
	return temporalx.Config{
		Address:     c.TemporalAddress,
		Namespace:   c.TemporalNamespace,
		TaskQueue:   c.TemporalTaskQueue,
		DialMaxWait: time.Minute,
	}
}

func wireTemporal(ctx context.Context, log *logger.Logger, cfg Config) (temporalsdkclient.Client, error) {
	if cfg.JobBackend != JobBackendTemporal {
		return nil, nil
	}
	tc, err := temporalx.NewClient(ctx, log, cfg.temporal())
	if err != nil {
		return nil, fmt.Errorf("init temporal: %w", err)
	}
	return tc, nil
}

func wireOpenAI(log *logger.Logger, cfg Config) (openai.Client, error) {
	return openai.NewClient(log, openai.Config{
		BaseURL:       cfg.ChatGPTBaseURL,
		APIKey:        cfg.ChatGPTAPIKey,
		Model:         cfg.ChatGPTModel,
		Style:         cfg.ChatGPTAPIStyle,
		Timeout:       cfg.ChatGPTRequestTimeout,
		ProxyHost:     cfg.ProxyHost,
		ProxyPort:     cfg.ProxyHTTPPort,
		ProxyUsername: cfg.ProxyUsername,
		ProxyPassword: cfg.ProxyPassword,
	})
}

func loadPrompts(log *logger.Logger, path string) (routegen.Prompts, error) {
	if path == "" {
		return routegen.DefaultPrompts(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return routegen.Prompts{}, fmt.Errorf("read prompts: %w", err)
	}
	p, err := routegen.LoadPrompts(raw)
	if err != nil {
		return routegen.Prompts{}, err
	}
	log.Info("prompt templates loaded", "path", path)
	return p, nil
}
