package middleware

import (
	"time"

	"IdServer/pkg/ctxmeta"
	"IdServer/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GinLogger 记录 HTTP 请求日志。
// 发号接口调用量大，正常请求只在 debug 级别输出，
// 5xx 与慢请求分别走 error / warn。
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		ip := ctxmeta.ClientIPFromGin(c)
		if ip == "" {
			ip = c.ClientIP()
		}

		c.Next()

		status := c.Writer.Status()
		cost := time.Since(start)
		ctx := ctxmeta.BuildContextFromGin(c)

		// /health 正常场景不打日志，避免健康检查刷屏。
		if path == "/health" && status < 500 {
			return
		}

		switch {
		case status >= 500:
			logger.Error(ctx, "HTTP 请求失败",
				logger.String("method", method),
				logger.String("path", path),
				logger.String("query", query),
				logger.String("ip", ip),
				logger.Int("status", status),
				logger.Duration("cost", cost),
				logger.String("errors", c.Errors.ByType(gin.ErrorTypeAny).String()),
			)
		case cost > time.Second:
			logger.Warn(ctx, "HTTP 慢请求",
				logger.String("method", method),
				logger.String("path", path),
				logger.String("query", query),
				logger.String("ip", ip),
				logger.Int("status", status),
				logger.Duration("cost", cost),
			)
		default:
			logger.Debug(ctx, "HTTP 请求",
				logger.String("method", method),
				logger.String("path", path),
				logger.String("ip", ip),
				logger.Int("status", status),
				logger.Duration("cost", cost),
			)
		}
	}
}
