package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/regstatus/tracker"
	"github.com/kbukum/regstatus/version"
)

// Metadata returns a handler that reports static service metadata for
// discovery tooling.
func Metadata(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service.name":      serviceName,
			"service.version":   version.Get().Version,
			"service.type":      "microservice",
			"service.discovery": "registry-backed",
			"service.endpoints": []string{
				"/api/health",
				"/api/info",
				"/api/discovery/status",
				"/api/metadata",
			},
			"timestamp": time.Now().Format(tracker.TimeLayout),
		})
	}
}
