// Package endpoint contains the Gin handlers for the service's HTTP surface:
// the standard health/metrics endpoints plus the /api group exposing the
// registration status tracker.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/regstatus/component"
	"github.com/kbukum/regstatus/tracker"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Health returns a handler that reports service health including component statuses.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		var components []component.Health

		if checker != nil {
			components = checker(c.Request.Context())
			for _, ch := range components {
				if ch.Status == component.StatusUnhealthy {
					status = "unhealthy"
					break
				}
				if ch.Status == component.StatusDegraded && status != "unhealthy" {
					status = "degraded"
				}
			}
		}

		httpStatus := http.StatusOK
		if status == "unhealthy" {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}

// APIHealth returns the discovery-facing health handler. Unlike Health it
// always answers 200; registry trouble shows up in the registry-status field,
// not in the HTTP status code.
func APIHealth(serviceName string, port int, t *tracker.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "UP",
			"timestamp":       time.Now().Format(tracker.TimeLayout),
			"service":         serviceName,
			"port":            port,
			"registry-status": t.Status(c.Request.Context()),
		})
	}
}
