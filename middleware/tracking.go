package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikegehrke/webcheck360/logging"
	"github.com/mikegehrke/webcheck360/urlutil"
)

// Tracking records visitors and audit request timings.
func Tracking(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track analysis requests
		if c.Request.URL.Path == "/api/analyze" && c.Request.Method == "POST" {
			domain := urlutil.ExtractDomain(c.GetString("audit_url"))
			durationMs := float64(time.Since(start).Milliseconds())
			stats.TrackAudit(domain, durationMs, c.Writer.Status() >= 400)

			// Periodically save statistics
			if stats.RequestTotal()%100 == 0 {
				go stats.Save()
			}
		}
	}
}
