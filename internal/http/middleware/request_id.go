package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/DevOps-In-Motion/buildalert/common/id"
	"github.com/DevOps-In-Motion/buildalert/common/logger"
)

const requestIDKey = "request_id"

// RequestID assigns a fresh identifier to every request, exposes it on the
// gin context and the X-Request-ID response header, and enriches the request
// context so every log line downstream carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.NewRequestID()
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: requestID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the identifier assigned by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
