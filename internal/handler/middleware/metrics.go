package middleware

import (
	"strconv"
	"time"

	"hotel-reservation/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware labels requests by route template so path ids do not explode cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
