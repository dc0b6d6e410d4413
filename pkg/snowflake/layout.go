package snowflake

import "fmt"

// 64 位 ID 的位布局（高位到低位）：
//
//	[ 1 bit 保留 ][ 41 bit 时间戳偏移 ][ 5 bit 数据中心 ][ 5 bit worker ][ 12 bit 序列号 ]
//
// 时间戳偏移 = 毫秒时间戳 - Epoch。Epoch 一旦变更，历史 ID 全部失去互操作性，
// 因此该常量不允许修改。
const (
	// Epoch 2021-01-01 00:00:00 UTC（毫秒）
	Epoch uint64 = 1609459200000

	WorkerIDBits     = 5
	DatacenterIDBits = 5
	SequenceBits     = 12

	// MaxWorkerID worker_id 上限（31）
	MaxWorkerID uint64 = (1 << WorkerIDBits) - 1
	// MaxDatacenterID datacenter_id 上限（31）
	MaxDatacenterID uint64 = (1 << DatacenterIDBits) - 1
	// SequenceMask 序列号掩码（4095）
	SequenceMask uint64 = (1 << SequenceBits) - 1

	workerIDShift     = SequenceBits
	datacenterIDShift = SequenceBits + WorkerIDBits
	timestampShift    = SequenceBits + WorkerIDBits + DatacenterIDBits
)

// Encode 将各字段拼装为雪花 ID。
// 前置条件：datacenterID ≤ 31、workerID ≤ 31、sequence ≤ 4095、timestamp ≥ Epoch，
// 越界字段会污染相邻位，调用方需先用 ValidateIdentity 校验身份字段。
func Encode(timestamp, datacenterID, workerID, sequence uint64) uint64 {
	return ((timestamp - Epoch) << timestampShift) |
		(datacenterID << datacenterIDShift) |
		(workerID << workerIDShift) |
		sequence
}

// ExtractTimestamp 从 ID 中取毫秒时间戳（已加回 Epoch）。
func ExtractTimestamp(id uint64) uint64 {
	return (id >> timestampShift) + Epoch
}

// ExtractDatacenterID 从 ID 中取 datacenter_id。
func ExtractDatacenterID(id uint64) uint64 {
	return (id >> datacenterIDShift) & MaxDatacenterID
}

// ExtractWorkerID 从 ID 中取 worker_id。
func ExtractWorkerID(id uint64) uint64 {
	return (id >> workerIDShift) & MaxWorkerID
}

// ExtractSequence 从 ID 中取序列号。
func ExtractSequence(id uint64) uint64 {
	return id & SequenceMask
}

// ValidateIdentity 校验 worker_id / datacenter_id 是否在 0-31 范围内。
// 越界属于配置错误，构造时一次性失败，不重试。
func ValidateIdentity(workerID, datacenterID uint64) error {
	if workerID > MaxWorkerID {
		return fmt.Errorf("%w: worker_id %d exceeds maximum %d", ErrIdentityOutOfRange, workerID, MaxWorkerID)
	}
	if datacenterID > MaxDatacenterID {
		return fmt.Errorf("%w: datacenter_id %d exceeds maximum %d", ErrIdentityOutOfRange, datacenterID, MaxDatacenterID)
	}
	return nil
}
