package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sharebox/internal/metrics"
)

// Metrics counts requests per route and error responses per status code.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncRequest(c.Request.Method, route)

		c.Next()

		if status := c.Writer.Status(); status >= 400 {
			metrics.IncError(strconv.Itoa(status))
		}
	}
}
