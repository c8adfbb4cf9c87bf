package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	backendErrTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backend_errors_total", Help: "Failed calls to the upstream REST backend"},
		[]string{"op", "status"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, backendErrTotal) }

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObserveBackendError 页面 handler 在后端调用失败时上报
func ObserveBackendError(op string, status int) {
	backendErrTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
}
