package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/regstatus/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info returns a handler that reports service metadata and build information.
func Info(serviceName string, port int) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"name":        serviceName,
			"version":     v.Version,
			"git_commit":  v.GitCommit,
			"go_version":  v.GoVersion,
			"description": "Microservice with registry-backed service discovery",
			"port":        port,
			"uptime":      time.Since(startTime).String(),
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"features": []string{
				"Service Discovery",
				"Health Monitoring",
				"RESTful APIs",
			},
		})
	}
}
