package snowflake

import (
	"fmt"
	"sync"
	"time"
)

// Options 生成器可调参数，零值字段使用默认值。
type Options struct {
	// ClockRefreshInterval 缓存时钟刷新周期，默认 1ms。
	ClockRefreshInterval time.Duration
	// CheckpointInterval 身份记录落盘周期，默认 1s。
	// 按时间而非按序列号节流，避免落盘频率随流量形态漂移。
	CheckpointInterval time.Duration
	// Clock 注入自定义时钟（主要用于测试）。
	// 注入后生成器不再自建缓存时钟，Close 也不负责停掉它。
	Clock Clock
}

const (
	defaultClockRefresh       = time.Millisecond
	defaultCheckpointInterval = time.Second
)

// Generator 雪花 ID 生成器。
//
// 内部状态 {sequence, lastTimestamp} 由单把互斥锁保护，每次 NextID
// 全程持锁，以此保证同一实例内序列号无竞争、ID 严格递增。
// 临界区只有几次算术运算和一次原子读时钟，锁竞争成本可控；
// 唯一的例外是同一毫秒内打满 4096 个序列号后的自旋等待（见 tilNextMillis）。
type Generator struct {
	mu sync.Mutex

	workerID     uint64
	datacenterID uint64

	sequence      uint64
	lastTimestamp uint64

	clock  Clock
	cached *CachedClock // 自建缓存时钟，注入 Clock 时为 nil

	manager          *WorkerManager // 无持久化身份时为 nil
	checkpointMillis uint64
	lastCheckpoint   uint64
}

// New 创建无持久化身份的生成器（适合无状态部署），
// worker_id / datacenter_id 必须由部署方保证不重复。
func New(workerID, datacenterID uint64, opts ...Options) (*Generator, error) {
	if err := ValidateIdentity(workerID, datacenterID); err != nil {
		return nil, err
	}

	g := newGenerator(workerID, datacenterID, resolveOptions(opts))
	return g, nil
}

// NewWithStore 从身份记录构造生成器：
// 加载（或新建）身份、做跨重启回拨校验、用记录的 last_timestamp 作为
// 生成器初始水位，再立即落盘一次记下本次启动时间。
func NewWithStore(store RecordStore, defaultDatacenterID uint64, opts ...Options) (*Generator, error) {
	o := resolveOptions(opts)

	clock := o.Clock
	var cached *CachedClock
	if clock == nil {
		cached = StartCachedClock(o.ClockRefreshInterval)
		clock = cached
	}

	manager, err := LoadWorker(store, defaultDatacenterID, clock)
	if err != nil {
		if cached != nil {
			cached.Stop()
		}
		return nil, err
	}

	o.Clock = clock
	g := newGenerator(manager.WorkerID(), manager.DatacenterID(), o)
	g.cached = cached
	g.manager = manager
	g.lastTimestamp = manager.Identity().LastTimestamp
	g.lastCheckpoint = clock.Millis()

	if err := manager.UpdateAndSave(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func resolveOptions(opts []Options) Options {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.ClockRefreshInterval <= 0 {
		o.ClockRefreshInterval = defaultClockRefresh
	}
	if o.CheckpointInterval <= 0 {
		o.CheckpointInterval = defaultCheckpointInterval
	}
	return o
}

func newGenerator(workerID, datacenterID uint64, o Options) *Generator {
	g := &Generator{
		workerID:         workerID,
		datacenterID:     datacenterID,
		checkpointMillis: uint64(o.CheckpointInterval / time.Millisecond),
	}
	if o.Clock != nil {
		g.clock = o.Clock
	} else {
		g.cached = StartCachedClock(o.ClockRefreshInterval)
		g.clock = g.cached
	}
	return g
}

// NextID 生成下一个 ID。
//
// 状态机（全程持锁）：
//  1. 读缓存时钟 t；
//  2. t < lastTimestamp：时钟回拨，报错且不改任何状态；
//  3. t == lastTimestamp：序列号 +1，打满 4096 后自旋等到下一毫秒；
//  4. t > lastTimestamp：序列号归零；
//  5. 按节流周期落盘身份记录，落盘失败则本次调用整体失败（不返回 ID）。
func (g *Generator) NextID() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.clock.Millis()
	if ts < g.lastTimestamp {
		return 0, fmt.Errorf("%w (last: %d, current: %d)", ErrClockBackwards, g.lastTimestamp, ts)
	}

	if ts == g.lastTimestamp {
		g.sequence = (g.sequence + 1) & SequenceMask
		if g.sequence == 0 {
			// 当前毫秒的序列空间已耗尽
			ts = g.tilNextMillis(g.lastTimestamp)
		}
	} else {
		g.sequence = 0
	}
	g.lastTimestamp = ts

	if g.manager != nil && ts-g.lastCheckpoint >= g.checkpointMillis {
		if err := g.manager.UpdateAndSave(); err != nil {
			return 0, err
		}
		g.lastCheckpoint = ts
	}

	return Encode(ts, g.datacenterID, g.workerID, g.sequence), nil
}

// tilNextMillis 自旋等待时钟跨过 last。
// 注意这是持锁自旋：等待时长受缓存时钟刷新周期约束（通常 1-2 个周期），
// 但单实例持续超过 4096 ID/ms 的负载下，其他调用方会在锁上排队出现延迟尖峰。
func (g *Generator) tilNextMillis(last uint64) uint64 {
	ts := g.clock.Millis()
	for ts <= last {
		ts = g.clock.Millis()
	}
	return ts
}

// WorkerID 返回 worker_id。
func (g *Generator) WorkerID() uint64 { return g.workerID }

// DatacenterID 返回 datacenter_id。
func (g *Generator) DatacenterID() uint64 { return g.datacenterID }

// LastTimestamp 返回最近一次发号的毫秒时间戳。
func (g *Generator) LastTimestamp() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastTimestamp
}

// Close 做最后一次身份落盘，并停掉自建的缓存时钟（等待其退出）。
// 注入外部 Clock 时，时钟生命周期归调用方。
func (g *Generator) Close() error {
	g.mu.Lock()
	var err error
	if g.manager != nil {
		err = g.manager.UpdateAndSave()
	}
	g.mu.Unlock()

	if g.cached != nil {
		g.cached.Stop()
	}
	return err
}
