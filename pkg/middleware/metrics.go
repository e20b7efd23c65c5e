package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentaid-waitlist/pkg/metrics"
)

// Metrics records prometheus request metrics, labelled by route template
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
