package initial

import (
	"context"
	"fmt"
	"time"

	"OrgLink/internal/config"
	redisPkg "OrgLink/pkg/redis"
	"OrgLink/pkg/zlog"

	"github.com/redis/go-redis/v9"
)

// InitRedis 按配置连接 Redis，连接失败只告警，缓存功能自动降级
func InitRedis() {
	conf := config.GetConfig()
	if !conf.RedisConfig.Enabled {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", conf.RedisConfig.Host, conf.RedisConfig.Port),
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.DB,
		PoolSize:     conf.RedisConfig.PoolSize,
		MinIdleConns: conf.RedisConfig.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zlog.Warn("Redis 连接失败，状态计数缓存不可用: " + err.Error())
		_ = client.Close()
		return
	}

	redisPkg.SetClient(client)
	zlog.Info("Redis 连接成功")
}
