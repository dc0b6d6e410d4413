package snowflake

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 测试用的可控时钟。autoStepEvery > 0 时每读 N 次前进 1ms，
// 用于让持锁自旋等待能够结束。
type fakeClock struct {
	millis        uint64
	reads         uint64
	autoStepEvery uint64
}

func (f *fakeClock) Millis() uint64 {
	f.reads++
	if f.autoStepEvery > 0 && f.reads%f.autoStepEvery == 0 {
		f.millis++
	}
	return f.millis
}

func (f *fakeClock) set(v uint64) { f.millis = v }

func TestWorkerRecordRoundTrip(t *testing.T) {
	identity := WorkerIdentity{WorkerID: 1, DatacenterID: 2, LastTimestamp: 1000, CreationTime: 1000}

	parsed, err := ParseWorkerRecord(identity.Render())
	require.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestWorkerRecordFormat(t *testing.T) {
	identity := WorkerIdentity{WorkerID: 3, DatacenterID: 7, LastTimestamp: 1700000000000, CreationTime: 1690000000000}
	assert.Equal(t, "3\n7\n1700000000000\n1690000000000\n", identity.Render())
}

func TestParseWorkerRecordErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"missing-lines", "1\n2\n3\n"},
		{"non-numeric-worker", "abc\n2\n3\n4\n"},
		{"non-numeric-timestamp", "1\n2\nxyz\n4\n"},
		{"negative", "1\n-2\n3\n4\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWorkerRecord(tc.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadRecord)
		})
	}
}

func TestCheckClockBackwards(t *testing.T) {
	identity := WorkerIdentity{LastTimestamp: 5000}

	assert.NoError(t, identity.CheckClockBackwards(5000))
	assert.NoError(t, identity.CheckClockBackwards(6000))

	err := identity.CheckClockBackwards(4999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClockBackwards)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "worker.conf"))

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreSaveLoad(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "worker.conf"))
	identity := WorkerIdentity{WorkerID: 9, DatacenterID: 4, LastTimestamp: 12345, CreationTime: 12000}

	require.NoError(t, store.Save(identity))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, identity, loaded)
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.conf")
	require.NoError(t, os.WriteFile(path, []byte("not a record"), 0o644))

	_, _, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRecord)
}

func TestLoadWorkerCreatesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.conf")
	clock := &fakeClock{millis: Epoch + 1000}

	m, err := LoadWorker(NewFileStore(path), 2, clock)
	require.NoError(t, err)

	assert.LessOrEqual(t, m.WorkerID(), MaxWorkerID)
	assert.Equal(t, uint64(2), m.DatacenterID())
	assert.FileExists(t, path)

	// 写回的记录可以再次解析
	loaded, found, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m.Identity(), loaded)
}

func TestLoadWorkerExistingRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.conf")
	existing := WorkerIdentity{WorkerID: 7, DatacenterID: 3, LastTimestamp: 1000, CreationTime: 500}
	require.NoError(t, NewFileStore(path).Save(existing))

	clock := &fakeClock{millis: 2000}
	m, err := LoadWorker(NewFileStore(path), 9, clock)
	require.NoError(t, err)

	// 已有记录时保留原身份，忽略默认 datacenter_id
	assert.Equal(t, uint64(7), m.WorkerID())
	assert.Equal(t, uint64(3), m.DatacenterID())
	assert.Equal(t, uint64(500), m.Identity().CreationTime)
}

func TestLoadWorkerDetectsClockBackwards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.conf")
	existing := WorkerIdentity{WorkerID: 1, DatacenterID: 1, LastTimestamp: 9000, CreationTime: 100}
	require.NoError(t, NewFileStore(path).Save(existing))

	clock := &fakeClock{millis: 8000}
	_, err := LoadWorker(NewFileStore(path), 1, clock)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClockBackwards)
}

func TestLoadWorkerRejectsOutOfRangeRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.conf")
	existing := WorkerIdentity{WorkerID: 99, DatacenterID: 1, LastTimestamp: 1000, CreationTime: 100}
	require.NoError(t, NewFileStore(path).Save(existing))

	clock := &fakeClock{millis: 2000}
	_, err := LoadWorker(NewFileStore(path), 1, clock)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityOutOfRange)
}

func TestUpdateAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.conf")
	clock := &fakeClock{millis: 1000}

	m, err := LoadWorker(NewFileStore(path), 1, clock)
	require.NoError(t, err)

	clock.set(5000)
	require.NoError(t, m.UpdateAndSave())
	assert.Equal(t, uint64(5000), m.Identity().LastTimestamp)

	loaded, _, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), loaded.LastTimestamp)

	// 回拨后拒绝落盘
	clock.set(4000)
	err = m.UpdateAndSave()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClockBackwards)
}

// failingStore 在 Save 时返回错误，用于验证 I/O 失败不被吞掉。
type failingStore struct {
	saveErr error
}

func (s *failingStore) Load() (WorkerIdentity, bool, error) {
	return WorkerIdentity{}, false, nil
}

func (s *failingStore) Save(WorkerIdentity) error {
	return s.saveErr
}

func TestLoadWorkerPropagatesSaveError(t *testing.T) {
	saveErr := errors.New("disk full")
	clock := &fakeClock{millis: 1000}

	_, err := LoadWorker(&failingStore{saveErr: saveErr}, 1, clock)
	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr)
}
