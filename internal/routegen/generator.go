package routegen

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yungbote/bestway-backend/internal/clients/openai"
	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/httpx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

// Generator turns aggregated content into a raw route object.
type Generator interface {
	Generate(ctx context.Context, content GenerationContent, mode domain.GenerationMode) (map[string]any, error)
}

type GeneratorConfig struct {
	// RequestDelay is slept before every send, retries included.
	RequestDelay time.Duration
	// MaxAttempts bounds the calls made for one generation when the provider answers 429.
	MaxAttempts int
	RetryDelay  time.Duration
}

type ProviderClient struct {
	log       *logger.Logger
	transport openai.Client
	quota     QuotaTracker
	prompts   Prompts
	pacing    time.Duration
	retry     RetryPolicy
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewProviderClient(log *logger.Logger, transport openai.Client, quota QuotaTracker, prompts Prompts, cfg GeneratorConfig) *ProviderClient {
	pc := &ProviderClient{
		log:       log.With("component", "ProviderClient"),
		transport: transport,
		quota:     quota,
		prompts:   prompts,
		pacing:    cfg.RequestDelay,
		sleep:     sleepCtx,
	}
	pc.retry = RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Delay:       cfg.RetryDelay,
		Retryable:   func(err error) bool { return KindOf(err) == KindProviderRateLimited },
		Sleep:       func(ctx context.Context, d time.Duration) error { return pc.sleep(ctx, d) },
		OnRetry: func(attempt int, err error) {
			pc.log.Warn("provider rate limited; retrying",
				"attempt", attempt,
				"max_attempts", cfg.MaxAttempts,
				"delay", cfg.RetryDelay.String(),
			)
		},
	}
	return pc
}

// Generate charges one quota slot per call. The slot is refunded when the
// provider never produced a successful reply.
func (c *ProviderClient) Generate(ctx context.Context, content GenerationContent, mode domain.GenerationMode) (map[string]any, error) {
	const op = "generate"

	slot, err := c.quota.Reserve(ctx)
	if err != nil {
		return nil, err
	}

	userMsg, err := json.Marshal(content)
	if err != nil {
		c.refund(ctx, slot)
		return nil, newError(KindInternal, op, err, "encode content")
	}
	prompt := c.prompts.For(mode)

	var reply []byte
	err = c.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		if err := c.sleep(ctx, c.pacing); err != nil {
			return err
		}
		body, err := c.transport.Complete(ctx, prompt, string(userMsg))
		if err != nil {
			return classifyTransportError(err)
		}
		reply = body
		return nil
	})
	if err != nil {
		c.log.Warn("provider call failed", "model", c.transport.Model(), "mode", mode, "error", err)
		c.refund(ctx, slot)
		return nil, err
	}

	obj, err := ParseProviderReply(reply)
	if err != nil {
		c.log.Warn("provider reply is not a JSON object", "model", c.transport.Model(), "mode", mode, "raw", RawPayload(err))
		return nil, err
	}
	return obj, nil
}

func (c *ProviderClient) refund(ctx context.Context, slot QuotaSlot) {
	if err := c.quota.Refund(context.WithoutCancel(ctx), slot); err != nil {
		c.log.Warn("quota refund failed", "day", slot.Day, "error", err)
	}
}

func classifyTransportError(err error) error {
	const op = "provider_call"
	if httpx.IsRateLimited(err) {
		return newError(KindProviderRateLimited, op, err, "")
	}
	if status := httpx.StatusCode(err); status != 0 {
		return newError(KindProviderTransport, op, err, "status %d", status)
	}
	if httpx.IsTimeout(err) {
		return newError(KindProviderTransport, op, err, "timeout")
	}
	return newError(KindProviderTransport, op, err, "")
}
