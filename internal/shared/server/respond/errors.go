package respond

import (
	"github.com/gin-gonic/gin"

	"cv-optimizer-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object surfaced to callers.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, kind, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"kind":       kind,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Kind:    kind,
			Message: message,
		},
	})
}
