package snowflake

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore 把身份记录放进 Redis 的 RecordStore 实现，
// 值沿用 4 行文本格式，与文件后端互相兼容。
// 适合 worker 无本地磁盘（容器滚动更新）但共享一套 Redis 的部署形态。
type RedisStore struct {
	client  *goredis.Client
	key     string
	timeout time.Duration
}

// NewRedisStore 创建 Redis 存储。key 需要包含 worker 实例标识，
// 例如 "idgen:worker:pod-3"，不同实例不可共用同一个 key。
func NewRedisStore(client *goredis.Client, key string) *RedisStore {
	return &RedisStore{
		client:  client,
		key:     key,
		timeout: 3 * time.Second,
	}
}

func (s *RedisStore) Load() (WorkerIdentity, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	content, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return WorkerIdentity{}, false, nil
		}
		return WorkerIdentity{}, false, fmt.Errorf("read worker record %s: %w", s.key, err)
	}

	identity, err := ParseWorkerRecord(content)
	if err != nil {
		return WorkerIdentity{}, false, err
	}
	return identity, true, nil
}

func (s *RedisStore) Save(identity WorkerIdentity) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// 不设过期时间：记录的 last_timestamp 丢失会让下次启动漏检回拨
	if err := s.client.Set(ctx, s.key, identity.Render(), 0).Err(); err != nil {
		return fmt.Errorf("write worker record %s: %w", s.key, err)
	}
	return nil
}
