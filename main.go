package main

import (
	"context"
	"log"

	"IdServer/config"
	"IdServer/pkg/logger"
	"IdServer/pkg/snowflake"
)

// main 演示最基本的生成器用法：文件持久化身份 + 连续发号 + 拆解。
// 运行：go run main.go
func main() {
	ctx := context.Background()

	lg, err := logger.Build(config.DefaultLoggerConfig())
	if err != nil {
		log.Fatalf("build logger failed: %v", err)
	}
	defer lg.Sync()
	logger.ReplaceGlobal(lg)

	gen, err := snowflake.NewWithStore(snowflake.NewFileStore("worker.conf"), 1)
	if err != nil {
		logger.Error(ctx, "初始化生成器失败", logger.ErrorField("error", err))
		return
	}
	defer gen.Close()

	logger.Info(ctx, "生成器就绪",
		logger.Uint64("worker_id", gen.WorkerID()),
		logger.Uint64("datacenter_id", gen.DatacenterID()),
	)

	var last uint64
	for i := 0; i < 10; i++ {
		id, err := gen.NextID()
		if err != nil {
			logger.Error(ctx, "发号失败", logger.ErrorField("error", err))
			return
		}
		logger.Info(ctx, "生成 ID", logger.Int("seq", i+1), logger.Uint64("id", id))
		last = id
	}

	info := snowflake.ParseID(last)
	logger.Info(ctx, "拆解最后一个 ID",
		logger.Uint64("timestamp", info.Timestamp),
		logger.String("time", info.TimeString()),
		logger.Uint64("datacenter_id", info.DatacenterID),
		logger.Uint64("worker_id", info.WorkerID),
		logger.Uint64("sequence", info.Sequence),
		logger.String("hex", info.Hex()),
	)
}
