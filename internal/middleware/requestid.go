package middleware

import (
	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID assigns each request a correlation ID. An incoming X-Request-ID
// header is honored so IDs survive proxies; otherwise one is generated. The ID
// is stored on the gin context, echoed in the response header, and threaded
// into the request context so every log line carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
