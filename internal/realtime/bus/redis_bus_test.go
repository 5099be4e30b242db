package bus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
)

func newTestBus(t *testing.T) Bus {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	b, err := NewRedisBus(logger.NewNop(), rdb, "test:sse")
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}
	return b
}

func TestRedisBusRoundTrip(t *testing.T) {
	b := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan realtime.SSEMessage, 1)
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	want := realtime.SSEMessage{
		Channel: realtime.PersonalChannel(6),
		Event:   realtime.SSEEventRouteGenerationStarted,
		Data:    map[string]any{"type": "route_generation_started"},
	}
	if err := b.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case m := <-got:
		if m.Channel != want.Channel || m.Event != want.Event {
			t.Fatalf("forwarded: want=%+v got=%+v", want, m)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for forwarded message")
	}
}

func TestRedisBusRequiresCallback(t *testing.T) {
	b := newTestBus(t)
	if err := b.StartForwarder(context.Background(), nil); err == nil {
		t.Fatalf("StartForwarder(nil): expected error")
	}
}

func TestNewRedisBusValidation(t *testing.T) {
	if _, err := NewRedisBus(logger.NewNop(), nil, ""); err == nil {
		t.Fatalf("nil client: expected error")
	}
}

func TestRedisBusDropsForeignPayloads(t *testing.T) {
	rb := &redisBus{log: logger.NewNop(), now: time.Now}
	if _, ok := rb.decode(`{"channel":"general-broadcast"}`); ok {
		t.Fatalf("decode(unversioned): expected drop")
	}
	if _, ok := rb.decode(`not json`); ok {
		t.Fatalf("decode(garbage): expected drop")
	}
	msg, ok := rb.decode(`{"v":1,"msg":{"channel":"personal-6","event":"route_generation_failed"}}`)
	if !ok || msg.Event != realtime.SSEEventRouteGenerationFailed || msg.Channel != "personal-6" {
		t.Fatalf("decode(v1): ok=%v msg=%+v", ok, msg)
	}
}
