package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bestway-backend/internal/http/response"
	"github.com/yungbote/bestway-backend/internal/pkg/ctxutil"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/realtime"
)

type EventsHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub
}

func NewEventsHandler(log *logger.Logger, hub *realtime.SSEHub) *EventsHandler {
	return &EventsHandler{log: log.With("handler", "EventsHandler"), hub: hub}
}

// Stream subscribes the caller to their personal channel and the broadcast
// channel for the lifetime of the request.
func (h *EventsHandler) Stream(c *gin.Context) {
	userID, ok := ctxutil.UserID(c.Request.Context())
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	client := h.hub.NewSSEClient(userID)
	h.hub.AddChannel(client, realtime.PersonalChannel(userID))
	h.hub.AddChannel(client, realtime.GeneralChannel)
	h.log.Info("SSE stream open", "user", userID, "client", client.ID)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	h.log.Info("SSE stream closed", "user", userID, "client", client.ID)
}
