package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/bestway-backend/internal/http/handlers"
	httpMW "github.com/yungbote/bestway-backend/internal/http/middleware"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	RouteGenerationHandler *httpH.RouteGenerationHandler
	EventsHandler          *httpH.EventsHandler
	HealthHandler          *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestID())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Realtime (SSE)
		if cfg.EventsHandler != nil {
			protected.GET("/events", cfg.EventsHandler.Stream)
		}

		// Route generation
		if cfg.RouteGenerationHandler != nil {
			protected.POST("/routes/generate/:survey_id", cfg.RouteGenerationHandler.Generate)
			protected.GET("/routes/generate/status", cfg.RouteGenerationHandler.Status)
		}
	}
	return r
}
