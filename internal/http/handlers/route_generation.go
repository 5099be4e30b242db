package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/http/response"
	"github.com/yungbote/bestway-backend/internal/pkg/ctxutil"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

type GenerationStarter interface {
	Start(ctx context.Context, userID, surveyID int64, mode domain.GenerationMode) (routegen.Job, error)
	IsActive(ctx context.Context, userID int64) (bool, error)
}

type RouteGenerationHandler struct {
	log *logger.Logger
	svc GenerationStarter
}

func NewRouteGenerationHandler(log *logger.Logger, svc GenerationStarter) *RouteGenerationHandler {
	return &RouteGenerationHandler{log: log.With("handler", "RouteGenerationHandler"), svc: svc}
}

// POST /api/routes/generate/:survey_id?mode=FULL|PARTIAL
func (h *RouteGenerationHandler) Generate(c *gin.Context) {
	userID, ok := ctxutil.UserID(c.Request.Context())
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	surveyID, err := strconv.ParseInt(c.Param("survey_id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", "invalid survey id")
		return
	}
	mode, ok := domain.ParseGenerationMode(c.Query("mode"))
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", "mode must be FULL or PARTIAL")
		return
	}

	job, err := h.svc.Start(c.Request.Context(), userID, surveyID, mode)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	response.RespondAccepted(c, gin.H{
		"generation_id": job.GenerationID.String(),
		"status":        "accepted",
	})
}

// GET /api/routes/generate/status
func (h *RouteGenerationHandler) Status(c *gin.Context) {
	userID, ok := ctxutil.UserID(c.Request.Context())
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	active, err := h.svc.IsActive(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("generation status lookup failed", "user", userID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "internal", "status unavailable")
		return
	}
	response.RespondOK(c, gin.H{"active": active})
}

func (h *RouteGenerationHandler) respondGenerationError(c *gin.Context, err error) {
	kind := routegen.KindOf(err)
	status := http.StatusInternalServerError
	msg := "could not start route generation"
	switch kind {
	case routegen.KindAdmissionConflict:
		status, msg = http.StatusConflict, "route generation already in progress"
	case routegen.KindInvalidInput:
		status, msg = http.StatusBadRequest, "invalid request"
	case routegen.KindNotFound:
		status, msg = http.StatusNotFound, "survey not found"
	default:
		h.log.Error("start route generation failed", "error", err)
	}
	response.RespondError(c, status, kind.PublicCode(), msg)
}
