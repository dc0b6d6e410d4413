package v1

import (
	"context"
	"strconv"

	"IdServer/apps/idgen/internal/dto"
	"IdServer/apps/idgen/internal/middleware"
	"IdServer/apps/idgen/internal/service"
	"IdServer/consts"
	"IdServer/pkg/ctxmeta"
	"IdServer/pkg/logger"
	"IdServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// IDHandler 发号处理器
type IDHandler struct {
	idService  service.IDService
	batchLimit int
}

// NewIDHandler 创建发号处理器。
// batchLimit: 单次批量生成上限，防止一个请求长时间占住生成器的锁。
func NewIDHandler(idService service.IDService, batchLimit int) *IDHandler {
	if batchLimit <= 0 {
		batchLimit = 1000
	}
	return &IDHandler{
		idService:  idService,
		batchLimit: batchLimit,
	}
}

// NextID 生成单个雪花 ID
// GET /api/v1/id
func (h *IDHandler) NextID(c *gin.Context) {
	ctx := ctxmeta.BuildContextFromGin(c)

	id, err := h.idService.NextID(ctx)
	if err != nil {
		h.failGenerate(c, ctx, err)
		return
	}

	middleware.CountGeneratedIDs("single", 1)
	result.Success(c, dto.IDResponse{
		ID:           id,
		IDStr:        strconv.FormatUint(id, 10),
		WorkerID:     h.idService.WorkerID(),
		DatacenterID: h.idService.DatacenterID(),
		Timestamp:    h.idService.Parse(id).Timestamp,
	})
}

// NextBatch 批量生成雪花 ID
// GET /api/v1/ids?count=N
func (h *IDHandler) NextBatch(c *gin.Context) {
	ctx := ctxmeta.BuildContextFromGin(c)

	count := 10
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			result.Fail(c, nil, consts.CodeParamError)
			return
		}
		count = parsed
	}
	if count > h.batchLimit {
		result.Fail(c, gin.H{"limit": h.batchLimit}, consts.CodeBatchTooLarge)
		return
	}

	ids, err := h.idService.NextBatch(ctx, count)
	if err != nil {
		h.failGenerate(c, ctx, err)
		return
	}

	middleware.CountGeneratedIDs("batch", len(ids))
	result.Success(c, dto.BatchIDResponse{
		IDs:          ids,
		Count:        len(ids),
		WorkerID:     h.idService.WorkerID(),
		DatacenterID: h.idService.DatacenterID(),
	})
}

// ParseID 拆解一个雪花 ID
// GET /api/v1/parse/:id
func (h *IDHandler) ParseID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		result.Fail(c, nil, consts.CodeInvalidSnowflakeID)
		return
	}

	info := h.idService.Parse(id)
	result.Success(c, dto.ParseResponse{
		ID:           info.ID,
		IDHex:        info.Hex(),
		IDBinary:     info.Binary(),
		Timestamp:    info.Timestamp,
		TimestampStr: info.TimeString(),
		DatacenterID: info.DatacenterID,
		WorkerID:     info.WorkerID,
		Sequence:     info.Sequence,
	})
}

// Stats 服务统计
// GET /api/v1/stats
func (h *IDHandler) Stats(c *gin.Context) {
	result.Success(c, h.idService.Stats())
}

// Worker worker 身份信息
// GET /api/v1/worker
func (h *IDHandler) Worker(c *gin.Context) {
	result.Success(c, dto.WorkerResponse{
		WorkerID:      h.idService.WorkerID(),
		DatacenterID:  h.idService.DatacenterID(),
		LastTimestamp: h.idService.LastTimestamp(),
	})
}

// failGenerate 统一处理发号失败：时钟回拨等核心错误是服务端问题，
// 记录日志并按业务码返回（客户端重试对回拨无意义，交给运维处理）。
func (h *IDHandler) failGenerate(c *gin.Context, ctx context.Context, err error) {
	code := service.ErrorCode(err)
	logger.Error(ctx, "发号失败",
		logger.Int("business_code", code),
		logger.ErrorField("error", err),
	)
	result.Fail(c, nil, code)
}
