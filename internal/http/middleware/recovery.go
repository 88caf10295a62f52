package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevOps-In-Motion/buildalert/internal/http/envelope"
)

// Recovery converts panics into the standard 500 error envelope instead of
// gin's default plain-text response. The panic value is logged, never echoed
// to the caller.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope.Error(
			"An internal server error occurred",
			http.StatusInternalServerError,
			"INTERNAL_SERVER_ERROR",
			map[string]any{"request_id": GetRequestID(c)},
		))
	})
}
