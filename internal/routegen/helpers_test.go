package routegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/bestway-backend/internal/clients/openai"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
)

// providerStub answers chat completion requests from a scripted list of
// status codes. The last entry repeats once the script runs out.
type providerStub struct {
	srv      *httptest.Server
	calls    atomic.Int64
	statuses []int
	content  string
}

func newProviderStub(t *testing.T, content string, statuses ...int) *providerStub {
	t.Helper()
	if len(statuses) == 0 {
		statuses = []int{http.StatusOK}
	}
	ps := &providerStub{statuses: statuses, content: content}
	ps.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(ps.calls.Add(1))
		status := ps.statuses[len(ps.statuses)-1]
		if n <= len(ps.statuses) {
			status = ps.statuses[n-1]
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatBody(ps.content)))
	}))
	t.Cleanup(ps.srv.Close)
	return ps
}

func (ps *providerStub) Calls() int { return int(ps.calls.Load()) }

func (ps *providerStub) client(t *testing.T) openai.Client {
	t.Helper()
	c, err := openai.NewClient(logger.NewNop(), openai.Config{
		BaseURL: ps.srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("openai.NewClient: %v", err)
	}
	return c
}

func chatBody(content string) string {
	b, _ := jsonString(content)
	return `{"choices":[{"message":{"role":"assistant","content":` + b + `}}]}`
}

func noSleep(context.Context, time.Duration) error { return nil }

func newTestGenerator(t *testing.T, ps *providerStub, quota QuotaTracker, maxAttempts int) *ProviderClient {
	t.Helper()
	g := NewProviderClient(logger.NewNop(), ps.client(t), quota, DefaultPrompts(), GeneratorConfig{
		RequestDelay: time.Second,
		MaxAttempts:  maxAttempts,
		RetryDelay:   time.Second,
	})
	g.sleep = noSleep
	return g
}

// recordingPublisher keeps every message published to it.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *recordingPublisher) Events(channel string) []realtime.SSEEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []realtime.SSEEvent
	for _, m := range p.msgs {
		if m.Channel == channel {
			out = append(out, m.Event)
		}
	}
	return out
}

func (p *recordingPublisher) Last() (realtime.SSEMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.msgs) == 0 {
		return realtime.SSEMessage{}, false
	}
	return p.msgs[len(p.msgs)-1], true
}

func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}
