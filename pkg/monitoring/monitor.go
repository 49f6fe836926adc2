package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// MembershipChanges 社区成员变更，action 取 add / remove
	MembershipChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_membership_changes_total",
			Help: "Community membership additions and removals",
		},
		[]string{"action"},
	)

	// PointsDelta 积分变动绝对值，direction 取 gain / loss
	PointsDelta = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamification_points_delta_total",
			Help: "Absolute point deltas applied to gamification records",
		},
		[]string{"direction"},
	)

	// ReportsGenerated 排行榜报表，format 取 pdf / json
	ReportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_reports_generated_total",
			Help: "Ranking reports produced",
		},
		[]string{"format"},
	)

	initOnce sync.Once
)

// Init 只注册一次，测试中多次构建路由也不会 panic
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			MembershipChanges,
			PointsDelta,
			ReportsGenerated,
		)
	})
}

// ObservePointsDelta 计数器不能递减，正负分开累计
func ObservePointsDelta(delta int) {
	switch {
	case delta > 0:
		PointsDelta.WithLabelValues("gain").Add(float64(delta))
	case delta < 0:
		PointsDelta.WithLabelValues("loss").Add(float64(-delta))
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
