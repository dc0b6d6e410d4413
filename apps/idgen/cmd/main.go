package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"IdServer/apps/idgen/internal/middleware"
	"IdServer/apps/idgen/internal/router"
	v1 "IdServer/apps/idgen/internal/router/v1"
	"IdServer/apps/idgen/internal/service"
	"IdServer/config"
	"IdServer/pkg/logger"
	pkgredis "IdServer/pkg/redis"
	"IdServer/pkg/snowflake"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	// 1. 初始化日志
	logCfg := config.LoadLoggerConfig()
	l, err := logger.Build(logCfg)
	if err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger.ReplaceGlobal(l)
	defer func() {
		// Sync 在某些情况下会返回错误（如 os.Stdout），可以忽略
		_ = logger.L().Sync()
	}()

	cfg := config.LoadServerConfig()
	logger.Info(ctx, "发号服务初始化中...",
		logger.Uint64("worker_id", cfg.WorkerID),
		logger.Uint64("datacenter_id", cfg.DatacenterID),
		logger.String("worker_record", cfg.WorkerRecordPath),
	)

	// 2. 构造生成器
	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "初始化雪花生成器失败", logger.ErrorField("error", err))
		os.Exit(1)
	}

	idService := service.NewIDService(gen)

	// 3. 初始化 IP 限流器
	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	go func() {
		// 定期清理不活跃 IP 的令牌桶
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			limiter.CleanupInactive()
		}
	}()

	// 4. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	r := router.InitRouter(v1.NewIDHandler(idService, cfg.BatchLimit), limiter)

	// 5. 配置服务器
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 6. 启动服务器（在 goroutine 中）
	go func() {
		logger.Info(ctx, "发号服务器启动中",
			logger.String("address", addr),
			logger.Uint64("worker_id", gen.WorkerID()),
			logger.Uint64("datacenter_id", gen.DatacenterID()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "服务器启动失败", logger.ErrorField("error", err))
			os.Exit(1)
		}
	}()

	// 7. 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info(ctx, "收到关闭信号，开始优雅停机...",
		logger.String("signal", sig.String()),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "服务器强制关闭", logger.ErrorField("error", err))
	}

	// 最后一次身份落盘 + 停掉缓存时钟
	if err := idService.Close(); err != nil {
		logger.Error(ctx, "关闭生成器失败", logger.ErrorField("error", err))
		os.Exit(1)
	}

	logger.Info(ctx, "发号服务器已优雅退出")
}

// buildGenerator 按配置构造生成器：
//   - 未配置身份记录：无持久化模式，直接使用配置的 worker/datacenter id；
//   - file 后端：本地文件记录；
//   - redis 后端：记录放 Redis，key 为 WorkerRecordPath。
//
// 身份记录加载失败（损坏/回拨）直接退出，不降级，避免发出重复 ID。
func buildGenerator(ctx context.Context, cfg config.ServerConfig) (*snowflake.Generator, error) {
	opts := snowflake.Options{
		ClockRefreshInterval: cfg.ClockRefreshInterval,
		CheckpointInterval:   cfg.CheckpointInterval,
	}

	if cfg.WorkerRecordPath == "" {
		return snowflake.New(cfg.WorkerID, cfg.DatacenterID, opts)
	}

	var store snowflake.RecordStore
	switch strings.ToLower(cfg.WorkerRecordBackend) {
	case "", "file":
		store = snowflake.NewFileStore(cfg.WorkerRecordPath)
	case "redis":
		client, err := pkgredis.Build(config.LoadRedisConfig())
		if err != nil {
			return nil, fmt.Errorf("build redis client: %w", err)
		}
		pkgredis.ReplaceGlobal(client)
		store = snowflake.NewRedisStore(client, cfg.WorkerRecordPath)
	default:
		return nil, fmt.Errorf("unknown worker record backend %q", cfg.WorkerRecordBackend)
	}

	logger.Info(ctx, "加载 worker 身份记录",
		logger.String("backend", cfg.WorkerRecordBackend),
		logger.String("location", cfg.WorkerRecordPath),
	)
	return snowflake.NewWithStore(store, cfg.DatacenterID, opts)
}
