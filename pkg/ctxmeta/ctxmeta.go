package ctxmeta

import (
	"context"

	"github.com/gin-gonic/gin"
)

// gin context 中使用的 key
const (
	GinKeyTraceID  = "trace_id"
	GinKeyClientIP = "client_ip"
)

type ctxKey int

const (
	ctxKeyTraceID ctxKey = iota
	ctxKeyClientIP
)

// WithTraceID 将 trace_id 注入 context。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyTraceID, traceID)
}

// TraceID 从 context 中取 trace_id，没有时返回空串。
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKeyTraceID).(string); ok {
		return v
	}
	return ""
}

// WithClientIP 将客户端 IP 注入 context。
func WithClientIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

// ClientIP 从 context 中取客户端 IP，没有时返回空串。
func ClientIP(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		return v
	}
	return ""
}

// SetTraceID 写入 gin context，供 handler/响应封装读取。
func SetTraceID(c *gin.Context, traceID string) {
	if c == nil || traceID == "" {
		return
	}
	c.Set(GinKeyTraceID, traceID)
}

// TraceIDFromGin 从 gin context 读取 trace_id。
func TraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(GinKeyTraceID)
}

// SetClientIP 写入 gin context。
func SetClientIP(c *gin.Context, ip string) {
	if c == nil || ip == "" {
		return
	}
	c.Set(GinKeyClientIP, ip)
}

// ClientIPFromGin 从 gin context 读取客户端 IP。
func ClientIPFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(GinKeyClientIP)
}

// BuildContextFromGin 把 gin context 中的元信息（trace_id、client_ip）
// 转存到标准 context，便于跨层传递给日志与服务代码。
func BuildContextFromGin(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	ctx := c.Request.Context()
	ctx = WithTraceID(ctx, TraceIDFromGin(c))
	ctx = WithClientIP(ctx, ClientIPFromGin(c))
	return ctx
}
