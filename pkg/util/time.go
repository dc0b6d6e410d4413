package util

import "time"

// FormatUnixMilliRFC3339 将毫秒时间戳格式化为 RFC3339（UTC）
func FormatUnixMilliRFC3339(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.Unix(0, ms*int64(time.Millisecond)).UTC().Format(time.RFC3339)
}

// FormatUnixMilli 将毫秒时间戳格式化为带毫秒的 RFC3339（UTC）
// 例：2022-01-01T00:00:00.000Z，用于展示雪花 ID 中的时间字段。
func FormatUnixMilli(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.Unix(0, ms*int64(time.Millisecond)).UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// TimeToUnixMilli 将 time.Time 转为毫秒时间戳
func TimeToUnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
