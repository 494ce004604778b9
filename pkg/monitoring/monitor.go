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

	// 答卷提交成功次数，按模板区分
	ResponsesSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionnaire_responses_submitted_total",
			Help: "Number of responses completed and scored",
		},
		[]string{"template_id"},
	)

	// 提交时校验失败次数
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionnaire_validation_failures_total",
			Help: "Number of submissions rejected by answer validation",
		},
		[]string{"template_id"},
	)

	ScorePercentage = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "questionnaire_score_percentage",
			Help:    "Distribution of response score percentages",
			Buckets: []float64{50, 60, 75, 90, 100},
		},
		[]string{"category"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ResponsesSubmitted)
		prometheus.MustRegister(ValidationFailures)
		prometheus.MustRegister(ScorePercentage)
	})
}

// ObserveSubmission 记录一次成功提交及其得分
func ObserveSubmission(templateID, category string, percentage float64) {
	ResponsesSubmitted.WithLabelValues(templateID).Inc()
	ScorePercentage.WithLabelValues(category).Observe(percentage)
}

func ObserveValidationFailure(templateID string) {
	ValidationFailures.WithLabelValues(templateID).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
