package config

import "time"

// RedisConfig 单实例 Redis 配置。
// 仅在 worker 身份记录使用 redis 后端时需要，保持轻量连接池即可。
type RedisConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`                 // host:port
	Password     string        `json:"password" yaml:"password"`         // 可空
	DB           int           `json:"db" yaml:"db"`                     // DB 索引，默认 0
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`         // 连接池大小
	MinIdleConns int           `json:"minIdleConns" yaml:"minIdleConns"` // 最小空闲连接
	DialTimeout  time.Duration `json:"dialTimeout" yaml:"dialTimeout"`   // 建连超时
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`   // 读超时
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"` // 写超时
	PoolTimeout  time.Duration `json:"poolTimeout" yaml:"poolTimeout"`   // 从池获取连接超时
	ConnMaxIdle  time.Duration `json:"connMaxIdle" yaml:"connMaxIdle"`   // 连接最大空闲时间
}

// DefaultRedisConfig 返回本地开发的默认配置。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         "redis:6379",
		Password:     "",
		DB:           0,
		PoolSize:     8,
		MinIdleConns: 2,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
		PoolTimeout:  4 * time.Second,
		ConnMaxIdle:  5 * time.Minute,
	}
}

// LoadRedisConfig 从环境变量读取 Redis 配置，未设置的项使用默认值。
func LoadRedisConfig() RedisConfig {
	cfg := DefaultRedisConfig()
	cfg.Addr = getenvString("IDGEN_REDIS_ADDR", cfg.Addr)
	cfg.Password = getenvString("IDGEN_REDIS_PASSWORD", cfg.Password)
	cfg.DB = getenvInt("IDGEN_REDIS_DB", cfg.DB)
	cfg.PoolSize = getenvInt("IDGEN_REDIS_POOL_SIZE", cfg.PoolSize)
	cfg.MinIdleConns = getenvInt("IDGEN_REDIS_MIN_IDLE", cfg.MinIdleConns)
	cfg.DialTimeout = getenvDuration("IDGEN_REDIS_DIAL_TIMEOUT", cfg.DialTimeout)
	cfg.ReadTimeout = getenvDuration("IDGEN_REDIS_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getenvDuration("IDGEN_REDIS_WRITE_TIMEOUT", cfg.WriteTimeout)
	return cfg
}
