package id

import (
	"github.com/oklog/ulid/v2"
)

// GenerateULID 生成时间有序的唯一 ID。
//
// 与雪花 ID 的取舍：
//   - ULID 不需要 worker_id / datacenter_id 配置，靠 80 bit 随机数保证唯一
//   - 雪花 ID 是 64 bit 整数，可直接做数据库主键，且同 worker 严格递增
//   - ULID 是 26 字符字符串，占用更大，排序粒度同为毫秒
//
// 保留此实现用于与雪花生成器做性能对比（见 pkg/snowflake 的基准测试），
// 以及给不需要严格整数 ID 的调用方一个开箱即用的选择。
//
// 并发安全：ulid.Make() 内部使用基于 sync.Pool 的并发安全全局熵池。
func GenerateULID() string {
	return ulid.Make().String()
}
