package middleware

import (
	"barcontrol/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestID propagates the incoming X-Request-ID header or mints a new one,
// and stashes the client IP on the request context for the audit trail.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(worker.WithClientIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}
