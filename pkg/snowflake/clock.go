package snowflake

import (
	"sync/atomic"
	"time"
)

// Clock 毫秒时间源。生成器只依赖这一接口，测试可注入假时钟。
type Clock interface {
	Millis() uint64
}

// SystemClock 直接读系统时钟。
type SystemClock struct{}

// Millis 返回当前 Unix 毫秒时间戳。
func (SystemClock) Millis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// CachedClock 缓存时钟：一个后台 goroutine 周期性读系统时钟写入原子单元，
// 读取方只做一次原子 load，不产生 syscall。代价是读数最多落后一个刷新周期。
//
// 生成器热路径持有互斥锁，锁内越短越好，这是用缓存时钟而非直接读系统时钟的原因。
type CachedClock struct {
	millis   atomic.Uint64
	running  atomic.Bool
	interval time.Duration
	done     chan struct{}
}

// StartCachedClock 同步读一次系统时钟作为初值，然后启动唯一的后台刷新 goroutine。
// interval 建议 1ms；interval 同时决定 Stop 的最坏等待时长。
func StartCachedClock(interval time.Duration) *CachedClock {
	if interval <= 0 {
		interval = time.Millisecond
	}
	c := &CachedClock{
		interval: interval,
		done:     make(chan struct{}),
	}
	c.millis.Store(uint64(time.Now().UnixMilli()))
	c.running.Store(true)

	go c.refreshLoop()
	return c
}

func (c *CachedClock) refreshLoop() {
	defer close(c.done)
	for c.running.Load() {
		time.Sleep(c.interval)
		c.millis.Store(uint64(time.Now().UnixMilli()))
	}
}

// Millis 返回缓存的毫秒时间戳。永不阻塞，永不失败。
func (c *CachedClock) Millis() uint64 {
	return c.millis.Load()
}

// Stop 通知后台 goroutine 退出并等待其结束。
// 停止是协作式的：goroutine 在下一次醒来时观察到标志后退出，
// 最坏等待约一个 interval。可重复调用。
func (c *CachedClock) Stop() {
	c.running.Store(false)
	<-c.done
}
