package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shotledger_http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	// OutcomeParseFailures counts resolution events dropped because the
	// stored outcome could not be parsed as a date
	OutcomeParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shotledger_outcome_parse_failures_total",
		Help: "Resolution events dropped due to unparseable outcome timestamps.",
	})
)

// Middleware records one HTTPRequests sample per handled request
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
