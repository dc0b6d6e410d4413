package config

import "time"

// ServerConfig ID 生成服务的运行参数。
// worker_id / datacenter_id 必须由部署方保证全局不重复，服务本身不做仲裁。
type ServerConfig struct {
	Host string `json:"host" yaml:"host"` // 监听地址
	Port int    `json:"port" yaml:"port"` // 监听端口

	WorkerID     uint64 `json:"workerId" yaml:"workerId"`         // Worker ID (0-31)
	DatacenterID uint64 `json:"datacenterId" yaml:"datacenterId"` // 数据中心 ID (0-31)

	// WorkerRecordPath 为空时不持久化 worker 身份（无状态模式）。
	// 非空时启动会读取/创建该文件，并做时钟回拨校验。
	WorkerRecordPath string `json:"workerRecordPath" yaml:"workerRecordPath"`

	// WorkerRecordBackend 身份记录存储后端：file 或 redis。
	WorkerRecordBackend string `json:"workerRecordBackend" yaml:"workerRecordBackend"`

	ClockRefreshInterval time.Duration `json:"clockRefreshInterval" yaml:"clockRefreshInterval"` // 缓存时钟刷新周期，默认 1ms
	CheckpointInterval   time.Duration `json:"checkpointInterval" yaml:"checkpointInterval"`     // 身份记录落盘周期，默认 1s

	BatchLimit int `json:"batchLimit" yaml:"batchLimit"` // 单次批量生成上限

	RateLimitPerSecond float64 `json:"rateLimitPerSecond" yaml:"rateLimitPerSecond"` // 每 IP 每秒令牌数
	RateLimitBurst     int     `json:"rateLimitBurst" yaml:"rateLimitBurst"`         // 令牌桶容量

	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅停机等待时长
}

// DefaultServerConfig 返回本地开发的默认配置。
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:                 "0.0.0.0",
		Port:                 8080,
		WorkerID:             1,
		DatacenterID:         1,
		WorkerRecordPath:     "",
		WorkerRecordBackend:  "file",
		ClockRefreshInterval: time.Millisecond,
		CheckpointInterval:   time.Second,
		BatchLimit:           1000,
		RateLimitPerSecond:   1000,
		RateLimitBurst:       2000,
		ShutdownTimeout:      30 * time.Second,
	}
}

// LoadServerConfig 从环境变量读取服务配置，未设置的项使用默认值。
func LoadServerConfig() ServerConfig {
	cfg := DefaultServerConfig()
	cfg.Host = getenvString("IDGEN_HOST", cfg.Host)
	cfg.Port = getenvInt("IDGEN_PORT", cfg.Port)
	cfg.WorkerID = getenvUint64("IDGEN_WORKER_ID", cfg.WorkerID)
	cfg.DatacenterID = getenvUint64("IDGEN_DATACENTER_ID", cfg.DatacenterID)
	cfg.WorkerRecordPath = getenvString("IDGEN_WORKER_RECORD", cfg.WorkerRecordPath)
	cfg.WorkerRecordBackend = getenvString("IDGEN_WORKER_RECORD_BACKEND", cfg.WorkerRecordBackend)
	cfg.ClockRefreshInterval = getenvDuration("IDGEN_CLOCK_REFRESH", cfg.ClockRefreshInterval)
	cfg.CheckpointInterval = getenvDuration("IDGEN_CHECKPOINT_INTERVAL", cfg.CheckpointInterval)
	cfg.BatchLimit = getenvInt("IDGEN_BATCH_LIMIT", cfg.BatchLimit)
	cfg.RateLimitPerSecond = getenvFloat("IDGEN_RATE_LIMIT_QPS", cfg.RateLimitPerSecond)
	cfg.RateLimitBurst = getenvInt("IDGEN_RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.ShutdownTimeout = getenvDuration("IDGEN_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	return cfg
}
