package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key for the request ID.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware reuses an inbound X-Request-ID or generates one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

// RequestID returns the current request's ID, or "" outside the middleware.
func RequestID(c *gin.Context) string {
	id, _ := c.Get(ContextKeyRequestID)
	s, _ := id.(string)
	return s
}
