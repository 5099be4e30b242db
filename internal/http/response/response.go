package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bestway-backend/internal/pkg/ctxutil"
)

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func envelope(c *gin.Context, status int, code, msg string) ErrorEnvelope {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return ErrorEnvelope{Error: APIError{
		Message:   msg,
		Code:      code,
		RequestID: ctxutil.RequestID(c.Request.Context()),
	}}
}

// RespondError writes a client-safe error body. msg must never carry internal detail.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, envelope(c, status, code, msg))
}

// AbortError is RespondError for middleware: later handlers do not run.
func AbortError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, envelope(c, status, code, msg))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondAccepted(c *gin.Context, payload any) {
	c.JSON(http.StatusAccepted, payload)
}
