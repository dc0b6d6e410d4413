package service

import (
	"context"
	"sync"
	"testing"

	"IdServer/consts"
	"IdServer/pkg/logger"
	"IdServer/pkg/snowflake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var idServiceLoggerOnce sync.Once

func newTestIDService(t *testing.T) IDService {
	t.Helper()
	idServiceLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
	})

	gen, err := snowflake.New(2, 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gen.Close() })

	return NewIDService(gen)
}

func TestServiceNextID(t *testing.T) {
	svc := newTestIDService(t)
	ctx := context.Background()

	id, err := svc.NextID(ctx)
	require.NoError(t, err)

	info := svc.Parse(id)
	assert.Equal(t, uint64(2), info.WorkerID)
	assert.Equal(t, uint64(3), info.DatacenterID)
	assert.Equal(t, uint64(2), svc.WorkerID())
	assert.Equal(t, uint64(3), svc.DatacenterID())
}

func TestServiceNextBatch(t *testing.T) {
	svc := newTestIDService(t)

	ids, err := svc.NextBatch(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, ids, 100)

	seen := make(map[uint64]struct{}, len(ids))
	prev := uint64(0)
	for _, id := range ids {
		assert.Greater(t, id, prev)
		seen[id] = struct{}{}
		prev = id
	}
	assert.Len(t, seen, 100)
}

func TestServiceStats(t *testing.T) {
	svc := newTestIDService(t)
	ctx := context.Background()

	_, err := svc.NextID(ctx)
	require.NoError(t, err)
	_, err = svc.NextBatch(ctx, 5)
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, uint64(2), stats.TotalRequests)
	assert.Equal(t, uint64(6), stats.SuccessfulIDs)
	assert.Equal(t, uint64(0), stats.FailedIDs)
	assert.InDelta(t, 100.0, stats.SuccessRate, 0.001)
}

func TestErrorCodeMapping(t *testing.T) {
	assert.Equal(t, consts.CodeClockBackwards, ErrorCode(snowflake.ErrClockBackwards))
	assert.Equal(t, consts.CodeIdentityOutOfRange, ErrorCode(snowflake.ErrIdentityOutOfRange))
	assert.Equal(t, consts.CodeWorkerRecordCorrupt, ErrorCode(snowflake.ErrBadRecord))
	assert.Equal(t, consts.CodeInternalError, ErrorCode(assert.AnError))
}
