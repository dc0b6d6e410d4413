package util

import (
	"IdServer/pkg/ctxmeta"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// TraceLogger 为每个请求生成 trace_id。
// 客户端通过 X-Request-ID 传入时直接沿用，便于全链路串联；
// 否则生成一个 UUID。trace_id 会写回响应头和 gin/ctx 两份上下文。
func TraceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(headerRequestID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctxmeta.SetTraceID(c, traceID)
		c.Request = c.Request.WithContext(ctxmeta.WithTraceID(c.Request.Context(), traceID))
		c.Header(headerRequestID, traceID)

		c.Next()
	}
}
