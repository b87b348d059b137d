package cache

import (
	"context"
	"fmt"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type HoldCounter interface {
	// 增加：配票進行中暫扣座位 (使用Lua腳本確保原子性)
	Reserve(ctx context.Context, performanceID int64, count int) (int, error)
	// 釋放：扣回暫扣座位，最低為 0
	Release(ctx context.Context, performanceID int64, count int) (int, error)
	// 獲取：目前暫扣數
	Held(ctx context.Context, performanceID int64) (int, error)
}

type RedisHoldCounterImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHoldCounter ttl 為暫扣的存活上限，程序中斷時避免座位永久被扣住
func NewRedisHoldCounter(client *redis.Client, ttl time.Duration) HoldCounter {
	return &RedisHoldCounterImpl{
		client: client,
		ttl:    ttl,
	}
}

// 場次庫存 key
func (h *RedisHoldCounterImpl) getInventoryKey(performanceID int64) string {
	return fmt.Sprintf("performance:%d:inventory", performanceID)
}

func (h *RedisHoldCounterImpl) Reserve(ctx context.Context, performanceID int64, count int) (int, error) {
	if count <= 0 {
		return 0, apperrors.ErrInvalidInput
	}

	script := `
		local key = KEYS[1]
		local qty = tonumber(ARGV[1])
		local ttl = tonumber(ARGV[2])

		local held = redis.call('HINCRBY', key, 'held', qty)
		if ttl > 0 then
			redis.call('PEXPIRE', key, ttl)
		end
		return held
	`

	held, err := h.client.Eval(ctx, script, []string{h.getInventoryKey(performanceID)}, count, h.ttl.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to reserve hold: %w", err)
	}
	return held, nil
}

func (h *RedisHoldCounterImpl) Release(ctx context.Context, performanceID int64, count int) (int, error) {
	if count <= 0 {
		return 0, apperrors.ErrInvalidInput
	}

	script := `
		local key = KEYS[1]
		local qty = tonumber(ARGV[1])

		local held = tonumber(redis.call('HGET', key, 'held') or '0')
		held = held - qty
		if held <= 0 then
			redis.call('DEL', key)
			return 0
		end
		redis.call('HSET', key, 'held', held)
		return held
	`

	held, err := h.client.Eval(ctx, script, []string{h.getInventoryKey(performanceID)}, count).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to release hold: %w", err)
	}
	return held, nil
}

func (h *RedisHoldCounterImpl) Held(ctx context.Context, performanceID int64) (int, error) {
	held, err := h.client.HGet(ctx, h.getInventoryKey(performanceID), "held").Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if held < 0 {
		return 0, nil
	}
	return held, nil
}
