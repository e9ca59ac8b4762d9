package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/regstatus/logger"
)

// RequestLogger returns middleware that logs every request with method,
// path, status code, and duration. Health-check paths are silently skipped.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": latency.String(),
			"client":  c.ClientIP(),
		}
		if id := c.GetString("request_id"); id != "" {
			fields["request_id"] = id
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		logByStatus(fields, status)
	}
}

func isHealthEndpoint(path string) bool {
	for _, hp := range []string{"/health", "/metrics"} {
		if path == hp || strings.HasSuffix(path, hp) {
			return true
		}
	}
	return false
}

// logByStatus logs request fields at the appropriate level for the status code.
func logByStatus(fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		logger.Error("Request completed", fields)
	case status >= 400:
		logger.Warn("Request completed", fields)
	default:
		logger.Debug("Request completed", fields)
	}
}
