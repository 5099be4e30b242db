package routegen

import (
	"context"
	"time"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
)

// GenerationEvent is the payload users receive on their personal channel.
type GenerationEvent struct {
	Type         realtime.SSEEvent `json:"type"`
	GenerationID string            `json:"generation_id,omitempty"`
	Data         any               `json:"data,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// Notifier delivers lifecycle events. Delivery is best-effort and never fails the caller.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, ev GenerationEvent)
	NotifyGeneral(ctx context.Context, ev GenerationEvent)
}

type Publisher interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
}

type BusNotifier struct {
	log     *logger.Logger
	pub     Publisher
	timeout time.Duration
}

func NewBusNotifier(log *logger.Logger, pub Publisher, timeout time.Duration) *BusNotifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &BusNotifier{log: log.With("component", "GenerationNotifier"), pub: pub, timeout: timeout}
}

func (n *BusNotifier) NotifyUser(ctx context.Context, userID int64, ev GenerationEvent) {
	n.publish(ctx, realtime.PersonalChannel(userID), ev)
}

// NotifyGeneral broadcasts to every connected client. Generation lifecycle
// events go to personal channels only; this is for operator announcements.
func (n *BusNotifier) NotifyGeneral(ctx context.Context, ev GenerationEvent) {
	n.publish(ctx, realtime.GeneralChannel, ev)
}

func (n *BusNotifier) publish(ctx context.Context, channel string, ev GenerationEvent) {
	if n == nil || n.pub == nil {
		return
	}
	// a cancelled job context must not suppress the terminal event
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	err := n.pub.Publish(pctx, realtime.SSEMessage{Channel: channel, Event: ev.Type, Data: ev})
	if err != nil {
		n.log.Warn("notification not delivered", "channel", channel, "event", ev.Type, "error", err)
		return
	}
	n.log.Debug("notification published", "channel", channel, "event", ev.Type)
}
