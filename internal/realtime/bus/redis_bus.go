package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
)

const (
	defaultChannel  = "bestway:sse"
	envelopeVersion = 1
	forwarderBuffer = 256
)

// envelope is the wire form on the pub/sub channel.
type envelope struct {
	V      int                 `json:"v"`
	SentAt time.Time           `json:"sent_at"`
	Msg    realtime.SSEMessage `json:"msg"`
}

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
	now     func() time.Time
}

// NewRedisBus fans generation events out over one redis pub/sub channel so
// every API replica can deliver them to its own SSE clients. The caller owns rdb.
func NewRedisBus(log *logger.Logger, rdb *goredis.Client, channel string) (Bus, error) {
	switch {
	case log == nil:
		return nil, fmt.Errorf("logger required")
	case rdb == nil:
		return nil, fmt.Errorf("redis client required")
	}
	ch := strings.TrimSpace(channel)
	if ch == "" {
		ch = defaultChannel
	}
	return &redisBus{
		log:     log.With("component", "RealtimeBus", "channel", ch),
		rdb:     rdb,
		channel: ch,
		now:     time.Now,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	raw, err := json.Marshal(envelope{V: envelopeVersion, SentAt: b.now().UTC(), Msg: msg})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", msg.Event, err)
	}
	receivers, err := b.rdb.Publish(ctx, b.channel, raw).Result()
	if err != nil {
		return fmt.Errorf("publish %s event: %w", msg.Event, err)
	}
	if receivers == 0 {
		b.log.Debug("event published with no API replica listening", "event", msg.Event, "target", msg.Channel)
	}
	return nil
}

// StartForwarder returns once the subscription is confirmed and relays events
// to onMsg from a background goroutine until ctx is done.
func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.log.Info("Realtime forwarder subscribed")

	go func() {
		defer sub.Close()
		in := sub.Channel(goredis.WithChannelSize(forwarderBuffer))
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				if msg, ok := b.decode(m.Payload); ok {
					onMsg(msg)
				}
			}
		}
	}()
	return nil
}

func (b *redisBus) decode(payload string) (realtime.SSEMessage, bool) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		b.log.Warn("dropping undecodable realtime payload", "error", err)
		return realtime.SSEMessage{}, false
	}
	if env.V != envelopeVersion {
		b.log.Warn("dropping realtime payload with unknown version", "version", env.V)
		return realtime.SSEMessage{}, false
	}
	if !env.SentAt.IsZero() {
		b.log.Debug("realtime event relayed", "event", env.Msg.Event, "lag", b.now().Sub(env.SentAt))
	}
	return env.Msg, true
}

// Close is a no-op; the redis client is shared and closed by its owner.
func (b *redisBus) Close() error { return nil }
