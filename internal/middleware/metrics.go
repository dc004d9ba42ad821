package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elric-cpu/website-v4-api/internal/metrics"
)

// Metrics creates a middleware that records request counts and
// durations per route. The route label uses the registered route
// pattern, not the raw path, to keep label cardinality bounded.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched requests (404s) collapse into one label.
			route = "unmatched"
		}

		collector.ObserveHTTPRequest(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
