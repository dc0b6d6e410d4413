package snowflake

import (
	"fmt"

	"IdServer/pkg/util"
)

// Info 一个雪花 ID 拆解后的各字段。
type Info struct {
	ID           uint64 `json:"id"`
	Timestamp    uint64 `json:"timestamp"` // 毫秒，已加回 Epoch
	DatacenterID uint64 `json:"datacenter_id"`
	WorkerID     uint64 `json:"worker_id"`
	Sequence     uint64 `json:"sequence"`
}

// ParseID 拆解一个雪花 ID。纯函数，不需要构造生成器。
func ParseID(id uint64) Info {
	return Info{
		ID:           id,
		Timestamp:    ExtractTimestamp(id),
		DatacenterID: ExtractDatacenterID(id),
		WorkerID:     ExtractWorkerID(id),
		Sequence:     ExtractSequence(id),
	}
}

// Hex 返回 ID 的十六进制表示。
func (i Info) Hex() string {
	return fmt.Sprintf("0x%016x", i.ID)
}

// Binary 返回 ID 的 64 位二进制表示。
func (i Info) Binary() string {
	return fmt.Sprintf("%064b", i.ID)
}

// TimeString 返回可读的时间戳（UTC，毫秒精度）。
func (i Info) TimeString() string {
	return util.FormatUnixMilli(int64(i.Timestamp))
}

// Details 返回多行的完整拆解信息，便于命令行/调试输出。
func (i Info) Details() string {
	return fmt.Sprintf(
		"Snowflake ID: %d\nHex: %s\nBinary: %s\nTimestamp: %d (%s)\nDatacenter ID: %d\nWorker ID: %d\nSequence: %d",
		i.ID, i.Hex(), i.Binary(), i.Timestamp, i.TimeString(), i.DatacenterID, i.WorkerID, i.Sequence,
	)
}
