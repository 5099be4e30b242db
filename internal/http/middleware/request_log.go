package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/bestway-backend/internal/pkg/ctxutil"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

const headerRequestID = "X-Request-Id"

func AttachRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), reqID))
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		ctx := c.Request.Context()
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if reqID := ctxutil.RequestID(ctx); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			fields = append(fields, "trace_id", sc.TraceID().String())
		}
		if uid, ok := ctxutil.UserID(ctx); ok {
			fields = append(fields, "user_id", uid)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
