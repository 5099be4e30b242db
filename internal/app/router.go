package app

import (
	"context"

	"github.com/gin-gonic/gin"

	httpx "github.com/yungbote/bestway-backend/internal/http"
	httpH "github.com/yungbote/bestway-backend/internal/http/handlers"
	httpMW "github.com/yungbote/bestway-backend/internal/http/middleware"
	"github.com/yungbote/bestway-backend/internal/routegen"
)

func (a *App) routerConfig(svc *routegen.Service) httpx.RouterConfig {
	if a.Cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return httpx.RouterConfig{
		Log:            a.Log,
		ServiceName:    a.serviceName,
		CORSOrigins:    a.Cfg.CORSOrigins,
		AuthMiddleware: httpMW.NewAuthMiddleware(a.Log, a.Cfg.JWTSecretKey),

		RouteGenerationHandler: httpH.NewRouteGenerationHandler(a.Log, svc),
		EventsHandler:          httpH.NewEventsHandler(a.Log, a.Hub),
		HealthHandler: httpH.NewHealthHandler(map[string]httpH.Pinger{
			"postgres": func(ctx context.Context) error {
				sqlDB, err := a.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error { return a.Redis.Ping(ctx).Err() },
		}),
	}
}
