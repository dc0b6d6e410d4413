package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"IdServer/apps/idgen/internal/dto"
	"IdServer/apps/idgen/internal/service"
	"IdServer/consts"
	"IdServer/pkg/logger"
	"IdServer/pkg/snowflake"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var idHandlerLoggerOnce sync.Once

func initIDHandlerTestLogger() {
	idHandlerLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
	})
}

type fakeIDService struct {
	nextIDFn    func(context.Context) (uint64, error)
	nextBatchFn func(context.Context, int) ([]uint64, error)
	statsFn     func() dto.StatsResponse
}

var _ service.IDService = (*fakeIDService)(nil)

func (f *fakeIDService) NextID(ctx context.Context) (uint64, error) {
	if f.nextIDFn == nil {
		return snowflake.Encode(snowflake.Epoch+1000, 1, 1, 0), nil
	}
	return f.nextIDFn(ctx)
}

func (f *fakeIDService) NextBatch(ctx context.Context, count int) ([]uint64, error) {
	if f.nextBatchFn == nil {
		ids := make([]uint64, count)
		for i := range ids {
			ids[i] = snowflake.Encode(snowflake.Epoch+1000, 1, 1, uint64(i))
		}
		return ids, nil
	}
	return f.nextBatchFn(ctx, count)
}

func (f *fakeIDService) Parse(id uint64) snowflake.Info { return snowflake.ParseID(id) }
func (f *fakeIDService) WorkerID() uint64               { return 1 }
func (f *fakeIDService) DatacenterID() uint64           { return 1 }
func (f *fakeIDService) LastTimestamp() uint64          { return snowflake.Epoch + 1000 }
func (f *fakeIDService) Close() error                   { return nil }

func (f *fakeIDService) Stats() dto.StatsResponse {
	if f.statsFn == nil {
		return dto.StatsResponse{}
	}
	return f.statsFn()
}

func newIDTestRouter(svc service.IDService) *gin.Engine {
	initIDHandlerTestLogger()
	gin.SetMode(gin.TestMode)

	h := NewIDHandler(svc, 1000)
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/id", h.NextID)
	api.GET("/ids", h.NextBatch)
	api.GET("/parse/:id", h.ParseID)
	api.GET("/stats", h.Stats)
	api.GET("/worker", h.Worker)
	return r
}

func doIDRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestNextIDSuccess(t *testing.T) {
	want := snowflake.Encode(snowflake.Epoch+5000, 1, 1, 42)
	r := newIDTestRouter(&fakeIDService{
		nextIDFn: func(context.Context) (uint64, error) { return want, nil },
	})

	w, body := doIDRequest(t, r, "/api/v1/id")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, consts.CodeSuccess, body["code"])

	data := body["data"].(map[string]any)
	assert.Equal(t, fmt.Sprintf("%d", want), data["id_str"])
}

func TestNextIDClockBackwards(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{
		nextIDFn: func(context.Context) (uint64, error) {
			return 0, fmt.Errorf("%w (last: 2, current: 1)", snowflake.ErrClockBackwards)
		},
	})

	w, body := doIDRequest(t, r, "/api/v1/id")
	// 12xxx 属于业务错误段：HTTP 200 + 业务码
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, consts.CodeClockBackwards, body["code"])
}

func TestNextBatch(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})

	_, body := doIDRequest(t, r, "/api/v1/ids?count=5")
	assert.EqualValues(t, consts.CodeSuccess, body["code"])

	data := body["data"].(map[string]any)
	assert.EqualValues(t, 5, data["count"])
	assert.Len(t, data["ids"].([]any), 5)
}

func TestNextBatchDefaultsToTen(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})

	_, body := doIDRequest(t, r, "/api/v1/ids")
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 10, data["count"])
}

func TestNextBatchRejectsBadCount(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})

	for _, path := range []string{"/api/v1/ids?count=0", "/api/v1/ids?count=-3", "/api/v1/ids?count=abc"} {
		_, body := doIDRequest(t, r, path)
		assert.EqualValues(t, consts.CodeParamError, body["code"], "path: %s", path)
	}
}

func TestNextBatchRejectsOverLimit(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})

	_, body := doIDRequest(t, r, "/api/v1/ids?count=1001")
	assert.EqualValues(t, consts.CodeBatchTooLarge, body["code"])
}

func TestParseID(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})
	id := snowflake.Encode(1640995200000, 3, 5, 100)

	_, body := doIDRequest(t, r, fmt.Sprintf("/api/v1/parse/%d", id))
	assert.EqualValues(t, consts.CodeSuccess, body["code"])

	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1640995200000, data["timestamp"])
	assert.EqualValues(t, 3, data["datacenter_id"])
	assert.EqualValues(t, 5, data["worker_id"])
	assert.EqualValues(t, 100, data["sequence"])
}

func TestParseIDRejectsGarbage(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})

	_, body := doIDRequest(t, r, "/api/v1/parse/not-a-number")
	assert.EqualValues(t, consts.CodeInvalidSnowflakeID, body["code"])
}

func TestWorkerInfo(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{})

	_, body := doIDRequest(t, r, "/api/v1/worker")
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["worker_id"])
	assert.EqualValues(t, 1, data["datacenter_id"])
}

func TestStats(t *testing.T) {
	r := newIDTestRouter(&fakeIDService{
		statsFn: func() dto.StatsResponse {
			return dto.StatsResponse{TotalRequests: 7, SuccessfulIDs: 6, FailedIDs: 1, SuccessRate: 85.7}
		},
	})

	_, body := doIDRequest(t, r, "/api/v1/stats")
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 7, data["total_requests"])
	assert.EqualValues(t, 6, data["successful_generations"])
}
