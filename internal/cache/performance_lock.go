package cache

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/config"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"go-gin-ticket-inventory/pkg/logger"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var lockLogger = logger.WithComponent("lock")

// 只刪除自己持有的鎖
const releaseScript = `
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`

type PerformanceLocker interface {
	// Acquire 依場次 id 遞增順序取得所有鎖；逾時回傳 ErrContended，已取得的鎖會一併釋放
	Acquire(ctx context.Context, performanceIDs []int64) (*Lease, error)
	// AcquireOffer 套票上限不屬於任何場次，改鎖販售規則；必須在場次鎖之前取得
	AcquireOffer(ctx context.Context, offerID int64) (*Lease, error)
}

type RedisPerformanceLockerImpl struct {
	client *redis.Client
	cfg    config.LockConfig
}

func NewRedisPerformanceLocker(client *redis.Client, cfg config.LockConfig) PerformanceLocker {
	return &RedisPerformanceLockerImpl{
		client: client,
		cfg:    cfg,
	}
}

func lockKey(performanceID int64) string {
	return fmt.Sprintf("performance:%d:lock", performanceID)
}

func offerLockKey(offerID int64) string {
	return fmt.Sprintf("offer:%d:lock", offerID)
}

// Lease 一次取得的鎖集合
type Lease struct {
	client *redis.Client
	token  string
	keys   []string
	ids    []int64 // 場次鎖才有
}

// PerformanceIDs 已鎖定的場次 (遞增)
func (l *Lease) PerformanceIDs() []int64 {
	return slices.Clone(l.ids)
}

// Covers 場次是否在鎖定範圍內
func (l *Lease) Covers(performanceID int64) bool {
	_, found := slices.BinarySearch(l.ids, performanceID)
	return found
}

// Release 反向順序釋放；個別失敗只記錄，鎖會在 TTL 後自行過期
func (l *Lease) Release(ctx context.Context) {
	if l == nil {
		return
	}
	for i := len(l.keys) - 1; i >= 0; i-- {
		key := l.keys[i]
		if err := l.client.Eval(ctx, releaseScript, []string{key}, l.token).Err(); err != nil {
			lockLogger.Warn("failed to release lock",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	l.keys = nil
	l.ids = nil
}

func (m *RedisPerformanceLockerImpl) Acquire(ctx context.Context, performanceIDs []int64) (*Lease, error) {
	ids := slices.Clone(performanceIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	lease := &Lease{
		client: m.client,
		token:  uuid.NewString(),
		ids:    make([]int64, 0, len(ids)),
	}
	deadline := time.Now().Add(m.cfg.Wait)

	for _, id := range ids {
		if err := m.acquireOne(ctx, lockKey(id), lease.token, deadline); err != nil {
			// 用新的 context 釋放，避免呼叫端已取消時留下殘鎖
			lease.Release(context.WithoutCancel(ctx))
			return nil, err
		}
		lease.keys = append(lease.keys, lockKey(id))
		lease.ids = append(lease.ids, id)
	}

	return lease, nil
}

func (m *RedisPerformanceLockerImpl) AcquireOffer(ctx context.Context, offerID int64) (*Lease, error) {
	lease := &Lease{
		client: m.client,
		token:  uuid.NewString(),
	}
	key := offerLockKey(offerID)
	if err := m.acquireOne(ctx, key, lease.token, time.Now().Add(m.cfg.Wait)); err != nil {
		return nil, err
	}
	lease.keys = []string{key}
	return lease, nil
}

func (m *RedisPerformanceLockerImpl) acquireOne(ctx context.Context, key string, token string, deadline time.Time) error {
	retry := m.cfg.RetryInterval
	if retry <= 0 {
		retry = 10 * time.Millisecond
	}

	for {
		ok, err := m.client.SetNX(ctx, key, token, m.cfg.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return nil
		}

		if !time.Now().Add(retry).Before(deadline) {
			lockLogger.Info("lock contended",
				zap.String("key", key),
				zap.Duration("wait", m.cfg.Wait),
			)
			return apperrors.ErrContended
		}

		timer := time.NewTimer(retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
