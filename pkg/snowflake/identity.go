package snowflake

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
)

// WorkerIdentity 一个 worker 进程的持久化身份。
// 持久化格式为 4 行纯文本（顺序固定）：
//
//	<worker_id>\n<datacenter_id>\n<last_timestamp>\n<creation_time>\n
//
// last_timestamp 用于跨重启检测时钟回拨：重启后若当前时间早于上次记录，
// 说明机器时钟被回拨过（或记录被篡改），必须拒绝启动。
type WorkerIdentity struct {
	WorkerID      uint64
	DatacenterID  uint64
	LastTimestamp uint64
	CreationTime  uint64
}

// NewWorkerIdentity 以当前时间创建一份新身份。
func NewWorkerIdentity(workerID, datacenterID, nowMillis uint64) WorkerIdentity {
	return WorkerIdentity{
		WorkerID:      workerID,
		DatacenterID:  datacenterID,
		LastTimestamp: nowMillis,
		CreationTime:  nowMillis,
	}
}

// ParseWorkerRecord 解析 4 行文本记录。行缺失或非数字内容返回 ErrBadRecord。
func ParseWorkerRecord(content string) (WorkerIdentity, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 4 {
		return WorkerIdentity{}, fmt.Errorf("%w: missing required fields", ErrBadRecord)
	}

	fields := [4]uint64{}
	names := [4]string{"worker_id", "datacenter_id", "last_timestamp", "creation_time"}
	for i := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(lines[i]), 10, 64)
		if err != nil {
			return WorkerIdentity{}, fmt.Errorf("%w: invalid %s", ErrBadRecord, names[i])
		}
		fields[i] = v
	}

	return WorkerIdentity{
		WorkerID:      fields[0],
		DatacenterID:  fields[1],
		LastTimestamp: fields[2],
		CreationTime:  fields[3],
	}, nil
}

// Render 输出持久化文本，与 ParseWorkerRecord 互逆。
func (w WorkerIdentity) Render() string {
	return fmt.Sprintf("%d\n%d\n%d\n%d\n", w.WorkerID, w.DatacenterID, w.LastTimestamp, w.CreationTime)
}

// CheckClockBackwards 校验当前时间未落后于记录时间。
// 落后即回拨，返回 ErrClockBackwards，绝不自动等待或修复。
func (w WorkerIdentity) CheckClockBackwards(nowMillis uint64) error {
	if nowMillis < w.LastTimestamp {
		return fmt.Errorf("%w: behind by %d ms (last: %d, current: %d)",
			ErrClockBackwards, w.LastTimestamp-nowMillis, w.LastTimestamp, nowMillis)
	}
	return nil
}

// RecordStore 身份记录的存储能力抽象。
// 文件只是默认实现，换成数据库行或分布式租约不需要动生成器算法。
type RecordStore interface {
	// Load 读取记录。记录不存在时返回 found=false 且无错误；
	// 记录存在但损坏时返回 ErrBadRecord。
	Load() (identity WorkerIdentity, found bool, err error)
	// Save 覆盖写入记录（全量重写）。
	Save(identity WorkerIdentity) error
}

// FileStore 基于单个本地文件的 RecordStore 实现。
type FileStore struct {
	path string
}

// NewFileStore 创建文件存储，path 为记录文件路径。
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path 返回记录文件路径。
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (WorkerIdentity, bool, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return WorkerIdentity{}, false, nil
		}
		return WorkerIdentity{}, false, fmt.Errorf("read worker record %s: %w", s.path, err)
	}

	identity, err := ParseWorkerRecord(string(content))
	if err != nil {
		return WorkerIdentity{}, false, err
	}
	return identity, true, nil
}

func (s *FileStore) Save(identity WorkerIdentity) error {
	// 截断后整体重写，记录只有几十字节
	if err := os.WriteFile(s.path, []byte(identity.Render()), 0o644); err != nil {
		return fmt.Errorf("write worker record %s: %w", s.path, err)
	}
	return nil
}

// WorkerManager 管理一个进程的身份记录生命周期：加载或创建、回拨校验、周期落盘。
type WorkerManager struct {
	store    RecordStore
	clock    Clock
	identity WorkerIdentity
}

// LoadWorker 加载或创建 worker 身份。
//   - 记录存在：解析并做回拨校验，解析失败/回拨直接报错，不自动修复；
//   - 记录不存在：以主机名+当前时间哈希出 0-31 的 worker_id，创建新身份。
//
// 成功后立即写回一次，保证记录落到存储上。
func LoadWorker(store RecordStore, defaultDatacenterID uint64, clock Clock) (*WorkerManager, error) {
	identity, found, err := store.Load()
	if err != nil {
		return nil, err
	}

	if found {
		if err := identity.CheckClockBackwards(clock.Millis()); err != nil {
			return nil, err
		}
	} else {
		identity = NewWorkerIdentity(deriveWorkerID(clock.Millis()), defaultDatacenterID, clock.Millis())
	}

	if err := ValidateIdentity(identity.WorkerID, identity.DatacenterID); err != nil {
		return nil, err
	}

	m := &WorkerManager{
		store:    store,
		clock:    clock,
		identity: identity,
	}
	if err := store.Save(identity); err != nil {
		return nil, err
	}
	return m, nil
}

// Identity 返回当前身份快照。
func (m *WorkerManager) Identity() WorkerIdentity { return m.identity }

// WorkerID 返回 worker_id。
func (m *WorkerManager) WorkerID() uint64 { return m.identity.WorkerID }

// DatacenterID 返回 datacenter_id。
func (m *WorkerManager) DatacenterID() uint64 { return m.identity.DatacenterID }

// UpdateAndSave 重新读时钟、再次做回拨校验、刷新 last_timestamp 并覆盖写回。
// 由生成器按节流周期调用，不是每个 ID 都落一次盘。
func (m *WorkerManager) UpdateAndSave() error {
	now := m.clock.Millis()
	if err := m.identity.CheckClockBackwards(now); err != nil {
		return err
	}
	m.identity.LastTimestamp = now
	return m.store.Save(m.identity)
}

// deriveWorkerID 以主机名和当前时间哈希出一个 0-31 的 worker_id。
// 只是降低裸机首启时撞号的概率，真正的不重复仍需部署方保证。
func deriveWorkerID(nowMillis uint64) uint64 {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}

	h := fnv.New64a()
	h.Write([]byte(hostname))
	h.Write([]byte(strconv.FormatUint(nowMillis, 10)))
	return h.Sum64() % (MaxWorkerID + 1)
}
