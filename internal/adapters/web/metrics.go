package web

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventreg_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	csvExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventreg_csv_exports_total",
		Help: "CSV exports served, by kind.",
	}, []string{"kind"})

	recordsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventreg_records_deleted_total",
		Help: "Events and registrations deleted, by kind.",
	}, []string{"kind"})
)

func recordMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
