package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"IdServer/apps/idgen/internal/dto"
	"IdServer/consts"
	"IdServer/pkg/logger"
	"IdServer/pkg/snowflake"
)

// IDService 发号服务接口，handler 只依赖这一层，不直接触碰生成器。
type IDService interface {
	NextID(ctx context.Context) (uint64, error)
	NextBatch(ctx context.Context, count int) ([]uint64, error)
	Parse(id uint64) snowflake.Info
	WorkerID() uint64
	DatacenterID() uint64
	LastTimestamp() uint64
	Stats() dto.StatsResponse
	Close() error
}

// idService 默认实现：封装生成器并维护服务级统计。
type idService struct {
	gen *snowflake.Generator

	totalRequests atomic.Uint64
	successful    atomic.Uint64
	failed        atomic.Uint64
	startTime     time.Time
}

// NewIDService 创建 ID 服务。
func NewIDService(gen *snowflake.Generator) IDService {
	return &idService{
		gen:       gen,
		startTime: time.Now(),
	}
}

// NextID 生成一个 ID 并记录统计。
func (s *idService) NextID(ctx context.Context) (uint64, error) {
	s.totalRequests.Add(1)

	id, err := s.gen.NextID()
	if err != nil {
		s.failed.Add(1)
		logger.Warn(ctx, "ID 生成失败", logger.ErrorField("error", err))
		return 0, err
	}
	s.successful.Add(1)
	return id, nil
}

// NextBatch 批量生成 count 个 ID。
// 中途失败返回错误及已生成的部分（调用方决定是否使用）。
func (s *idService) NextBatch(ctx context.Context, count int) ([]uint64, error) {
	s.totalRequests.Add(1)

	ids := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		id, err := s.gen.NextID()
		if err != nil {
			s.successful.Add(uint64(i))
			s.failed.Add(uint64(count - i))
			logger.Warn(ctx, "批量生成中断",
				logger.Int("requested", count),
				logger.Int("generated", i),
				logger.ErrorField("error", err),
			)
			return ids, err
		}
		ids = append(ids, id)
	}
	s.successful.Add(uint64(count))
	return ids, nil
}

// Parse 拆解一个雪花 ID。纯函数，不计入生成统计。
func (s *idService) Parse(id uint64) snowflake.Info {
	return snowflake.ParseID(id)
}

func (s *idService) WorkerID() uint64 { return s.gen.WorkerID() }

func (s *idService) DatacenterID() uint64 { return s.gen.DatacenterID() }

func (s *idService) LastTimestamp() uint64 { return s.gen.LastTimestamp() }

// Stats 返回统计快照。
func (s *idService) Stats() dto.StatsResponse {
	total := s.totalRequests.Load()
	success := s.successful.Load()
	failed := s.failed.Load()
	uptime := uint64(time.Since(s.startTime).Seconds())

	successRate := 0.0
	if success+failed > 0 {
		successRate = float64(success) / float64(success+failed) * 100
	}
	rps := 0.0
	if uptime > 0 {
		rps = float64(total) / float64(uptime)
	}

	return dto.StatsResponse{
		TotalRequests:     total,
		SuccessfulIDs:     success,
		FailedIDs:         failed,
		SuccessRate:       successRate,
		UptimeSeconds:     uptime,
		RequestsPerSecond: rps,
	}
}

// Close 关闭底层生成器（最后一次身份落盘 + 停掉缓存时钟）。
func (s *idService) Close() error {
	return s.gen.Close()
}

// ErrorCode 将核心错误映射为业务错误码。
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, snowflake.ErrIdentityOutOfRange):
		return consts.CodeIdentityOutOfRange
	case errors.Is(err, snowflake.ErrClockBackwards):
		return consts.CodeClockBackwards
	case errors.Is(err, snowflake.ErrBadRecord):
		return consts.CodeWorkerRecordCorrupt
	default:
		return consts.CodeInternalError
	}
}
