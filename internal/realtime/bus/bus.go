package bus

import (
	"context"

	"github.com/yungbote/bestway-backend/internal/realtime"
)

// Bus carries SSE messages between worker processes and the API processes
// that hold the client connections.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
