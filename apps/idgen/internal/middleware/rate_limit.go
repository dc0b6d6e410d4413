package middleware

import (
	"sync"

	"IdServer/consts"
	"IdServer/pkg/ctxmeta"
	"IdServer/pkg/logger"
	"IdServer/pkg/result"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter IP 级别的限流器，为每个来源 IP 维护独立的令牌桶。
// 发号服务无认证，按 IP 限流是唯一可用的粒度。
type IPRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // 每秒产生的令牌数
	b        int        // 令牌桶容量
}

// NewIPRateLimiter 创建 IP 限流器。
// requestsPerSecond: 每秒允许的请求数（令牌产生速率）
// burst: 令牌桶容量（允许的突发请求数）
func NewIPRateLimiter(requestsPerSecond float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(requestsPerSecond),
		b:        burst,
	}
}

// GetLimiter 获取指定 IP 的限流器，不存在则新建。
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[ip] = limiter
	}
	return limiter
}

// CleanupInactive 清理长时间未使用的限流器，定期调用可释放内存。
// 令牌桶已满说明这个 IP 很久没有请求了。
func (l *IPRateLimiter) CleanupInactive() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, limiter := range l.limiters {
		if limiter.Tokens() >= float64(l.b) {
			delete(l.limiters, ip)
		}
	}
}

// Count 返回当前限流器数量（用于监控）。
func (l *IPRateLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// IPRateLimitMiddleware 按来源 IP 做令牌桶限流。
func IPRateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ctxmeta.ClientIPFromGin(c)
		if ip == "" {
			ip = c.ClientIP()
		}

		if !limiter.GetLimiter(ip).Allow() {
			logger.Warn(ctxmeta.BuildContextFromGin(c), "请求被限流",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
			)
			result.Fail(c, nil, consts.CodeTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
