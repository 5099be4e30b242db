package temporalx

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

func TestBackoffCaps(t *testing.T) {
	cases := map[int]time.Duration{
		1:  250 * time.Millisecond,
		2:  500 * time.Millisecond,
		3:  time.Second,
		10: 5 * time.Second,
	}
	for attempt, want := range cases {
		if got := backoff(attempt); got != want {
			t.Fatalf("backoff(%d): want=%s got=%s", attempt, want, got)
		}
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	c, err := NewClient(context.Background(), logger.NewNop(), Config{})
	if err != nil || c != nil {
		t.Fatalf("NewClient: want=nil,nil got=%v,%v", c, err)
	}
}

func TestTLSRequiresCertAndKey(t *testing.T) {
	_, err := NewClient(context.Background(), logger.NewNop(), Config{Address: "localhost:7233", ClientCAPath: "/nonexistent"})
	if err == nil {
		t.Fatalf("NewClient: want tls config error")
	}
}
