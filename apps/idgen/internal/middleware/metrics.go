package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标定义

// httpRequestsTotal 计数器：记录所有 HTTP 请求总数
// 标签：
//   - method: HTTP 方法
//   - path: 请求路径
//   - status: HTTP 状态码
var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "idgen_http_requests_total",
		Help: "Total number of HTTP requests processed by the id service",
	},
	[]string{"method", "path", "status"},
)

// httpBusinessCodeTotal 计数器：记录业务状态码分布
// 标签：
//   - method: HTTP 方法
//   - path: 请求路径
//   - business_code: 业务状态码 (0=成功, 12002=时钟回拨 等)
var httpBusinessCodeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "idgen_http_business_code_total",
		Help: "Total number of HTTP requests by business code",
	},
	[]string{"method", "path", "business_code"},
)

// httpRequestDuration 直方图：记录请求耗时分布
var httpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "idgen_http_request_duration_seconds",
		Help:    "HTTP request latency distributions in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// idsGeneratedTotal 计数器：发出去的 ID 总数（按单个/批量区分）
var idsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "idgen_ids_generated_total",
		Help: "Total number of snowflake ids generated",
	},
	[]string{"mode"},
)

// PrometheusMiddleware 采集 HTTP 层指标。
// path 使用路由模板（FullPath）而非原始 URL，避免 /parse/:id 这类
// 参数路径导致标签基数爆炸。
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		if code, exists := c.Get("business_code"); exists {
			if businessCode, ok := code.(int); ok {
				httpBusinessCodeTotal.WithLabelValues(method, path, strconv.Itoa(businessCode)).Inc()
			}
		}
	}
}

// CountGeneratedIDs 记录发号量。mode: single / batch。
func CountGeneratedIDs(mode string, n int) {
	if n > 0 {
		idsGeneratedTotal.WithLabelValues(mode).Add(float64(n))
	}
}
