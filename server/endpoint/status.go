package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/regstatus/tracker"
)

// statusResponse is the discovery status envelope: the tracker's report plus
// the response timestamp added here.
type statusResponse struct {
	tracker.Report
	Timestamp string `json:"timestamp"`
}

// DiscoveryStatus returns a handler exposing the full registration status.
// The tracker never fails, so this endpoint always answers 200 — an
// unreachable registry is reported in the body, not as an HTTP error.
func DiscoveryStatus(t *tracker.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := t.Report(c.Request.Context())
		c.JSON(http.StatusOK, statusResponse{
			Report:    report,
			Timestamp: time.Now().Format(tracker.TimeLayout),
		})
	}
}
