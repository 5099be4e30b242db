package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type SSEClient struct {
	ID       uuid.UUID
	UserID   int64
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
	once     sync.Once
	Logger   *logger.Logger
}
