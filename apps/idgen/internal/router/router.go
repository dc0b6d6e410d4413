package router

import (
	"IdServer/apps/idgen/internal/middleware"
	v1 "IdServer/apps/idgen/internal/router/v1"
	"IdServer/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitRouter 初始化路由
// idHandler: 发号处理器（依赖注入）
// limiter: IP 限流器，nil 时不挂限流中间件（测试用）
func InitRouter(idHandler *v1.IDHandler, limiter *middleware.IPRateLimiter) *gin.Engine {
	r := gin.New()

	// 恢复中间件
	r.Use(middleware.GinRecovery(true))

	// 追踪中间件 (生成 trace_id)
	r.Use(util.TraceLogger())

	// 客户端 IP 中间件
	r.Use(middleware.ClientIPMiddleware())

	// 日志中间件
	r.Use(middleware.GinLogger())

	// Prometheus 监控中间件
	r.Use(middleware.PrometheusMiddleware())

	// 跨域中间件
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	// IP 限流中间件（内存令牌桶）
	if limiter != nil {
		r.Use(middleware.IPRateLimitMiddleware(limiter))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus 指标暴露接口
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/id", idHandler.NextID)
		api.GET("/ids", idHandler.NextBatch)
		api.GET("/parse/:id", idHandler.ParseID)
		api.GET("/stats", idHandler.Stats)
		api.GET("/worker", idHandler.Worker)
	}

	return r
}
