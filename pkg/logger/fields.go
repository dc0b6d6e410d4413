package logger

import (
	"context"
	"time"

	"IdServer/pkg/ctxmeta"

	"go.uber.org/zap"
)

// 本文件提供带 context 的日志入口：自动附加 trace_id，省去每个调用点手动拼装。
// 字段构造器是 zap 的薄包装，避免业务代码直接 import zap。

// Debug 输出 debug 日志，自动附加 ctx 中的 trace_id。
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	if l := L(); l != nil {
		l.Debug(msg, withTrace(ctx, fields)...)
	}
}

// Info 输出 info 日志，自动附加 ctx 中的 trace_id。
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	if l := L(); l != nil {
		l.Info(msg, withTrace(ctx, fields)...)
	}
}

// Warn 输出 warn 日志，自动附加 ctx 中的 trace_id。
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	if l := L(); l != nil {
		l.Warn(msg, withTrace(ctx, fields)...)
	}
}

// Error 输出 error 日志，自动附加 ctx 中的 trace_id。
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	if l := L(); l != nil {
		l.Error(msg, withTrace(ctx, fields)...)
	}
}

func withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	traceID := ctxmeta.TraceID(ctx)
	if traceID == "" {
		return fields
	}
	return append(fields, zap.String("trace_id", traceID))
}

// 字段构造器

func String(key, value string) zap.Field            { return zap.String(key, value) }
func Int(key string, value int) zap.Field           { return zap.Int(key, value) }
func Int64(key string, value int64) zap.Field       { return zap.Int64(key, value) }
func Uint64(key string, value uint64) zap.Field     { return zap.Uint64(key, value) }
func Float64(key string, value float64) zap.Field   { return zap.Float64(key, value) }
func Bool(key string, value bool) zap.Field         { return zap.Bool(key, value) }
func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }
func Any(key string, value interface{}) zap.Field   { return zap.Any(key, value) }
func ErrorField(key string, err error) zap.Field    { return zap.NamedError(key, err) }
