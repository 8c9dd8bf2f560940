package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"shelfio-backend/pkg/logger"
)

// Logger writes one access-log line per request through the shared
// logger, tagged with the request id so it can be joined with the
// service logs for the same call.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.Info("request completed", map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
	}
}
