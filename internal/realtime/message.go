package realtime

import "strconv"

type SSEEvent string

const (
	SSEEventRouteGenerationStarted   SSEEvent = "route_generation_started"
	SSEEventRouteGenerationSucceeded SSEEvent = "route_generation_succeeded"
	SSEEventRouteGenerationFailed    SSEEvent = "route_generation_failed"
)

const GeneralChannel = "general-broadcast"

// PersonalChannel is the per-user channel name every client of userID listens on.
func PersonalChannel(userID int64) string {
	return "personal-" + strconv.FormatInt(userID, 10)
}

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}
