package database

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/config"
	"net"

	"github.com/redis/go-redis/v9"
)

// InitRedis 場次鎖、暫扣計數與稽核 stream 共用同一個 client
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", rdb.Options().Addr, err)
	}
	return rdb, nil
}
