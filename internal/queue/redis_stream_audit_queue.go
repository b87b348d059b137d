package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/pkg/logger"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultStreamKey  = "audit:stream"
	ConsumerGroupName = "audit-workers"

	// 每筆 entry 除了 payload 之外另存 type 與 customer，方便 XRANGE 直接查看
	fieldPayload  = "txn"
	fieldType     = "txn_type"
	fieldCustomer = "customer_id"

	readBatch = 10
)

var mqLogger = logger.WithComponent("mq")

// RedisStreamAuditQueueConfig 零值欄位使用預設
type RedisStreamAuditQueueConfig struct {
	ClaimMinIdleTime   time.Duration // 未 ack 超過此時間才重新領取
	MaxRetryCount      int           // 投遞次數上限，超過即丟棄
	ReadGroupBlockTime time.Duration
	MaxLen             int64 // stream 概略長度上限；已寫入資料庫的紀錄不需要留在 stream
}

func (c *RedisStreamAuditQueueConfig) withDefaults() RedisStreamAuditQueueConfig {
	out := RedisStreamAuditQueueConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		MaxLen:             100_000,
	}
	if c == nil {
		return out
	}
	if c.ClaimMinIdleTime > 0 {
		out.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		out.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		out.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	if c.MaxLen > 0 {
		out.MaxLen = c.MaxLen
	}
	return out
}

type RedisStreamAuditQueueImpl struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	cfg      RedisStreamAuditQueueConfig
}

// NewRedisStreamAuditQueue 多個 server 共用同一個 consumer group，各自以 consumerID 區分
func NewRedisStreamAuditQueue(client *redis.Client, streamKey string, consumerID string, config *RedisStreamAuditQueueConfig) (AuditQueue, error) {
	if streamKey == "" {
		streamKey = DefaultStreamKey
	}
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	q := &RedisStreamAuditQueueImpl{
		client:   client,
		stream:   streamKey,
		group:    ConsumerGroupName,
		consumer: "auditor:" + consumerID,
		cfg:      config.withDefaults(),
	}

	err := client.XGroupCreateMkStream(context.Background(), q.stream, q.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("create consumer group %s on %s: %w", q.group, q.stream, err)
	}
	return q, nil
}

func (q *RedisStreamAuditQueueImpl) PublishTxn(ctx context.Context, txn *model.Txn) error {
	payload, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("marshal txn: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		MaxLen: q.cfg.MaxLen,
		Approx: true,
		Values: map[string]interface{}{
			fieldPayload:  string(payload),
			fieldType:     string(txn.Type),
			fieldCustomer: strconv.FormatInt(txn.CustomerID, 10),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", txn.Type, err)
	}
	return nil
}

// SubscribeTxns 新訊息與逾時未 ack 的訊息走同一個 channel
func (q *RedisStreamAuditQueueImpl) SubscribeTxns(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		// 兩個迴圈都結束後才能關閉 out
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.reclaimLoop(ctx, out)
		}()
		q.readLoop(ctx, out)
		wg.Wait()
	}()
	return out, nil
}

func (q *RedisStreamAuditQueueImpl) Close() error {
	return nil
}

// readLoop 只讀從未投遞過的訊息 (">")
func (q *RedisStreamAuditQueueImpl) readLoop(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.group,
			Consumer: q.consumer,
			Streams:  []string{q.stream, ">"},
			Count:    readBatch,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			mqLogger.Error("xreadgroup failed", zap.String("stream", q.stream), zap.Error(err))
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, s := range streams {
			if s.Stream != q.stream {
				continue
			}
			if !q.deliver(ctx, out, s.Messages, false) {
				return
			}
		}
	}
}

// reclaimLoop 以 XAUTOCLAIM 接手 nack(requeue) 或 worker 當掉而留在 PEL 的訊息
func (q *RedisStreamAuditQueueImpl) reclaimLoop(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()

	cursor := "0-0"
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   q.stream,
			Group:    q.group,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    cursor,
			Count:    readBatch,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() == nil {
				mqLogger.Error("xautoclaim failed", zap.String("stream", q.stream), zap.Error(err))
			}
			continue
		}
		// 掃到底之後從頭開始
		cursor = next
		if cursor == "" {
			cursor = "0-0"
		}

		if !q.deliver(ctx, out, claimed, true) {
			return
		}
	}
}

// deliver 回傳 false 表示 ctx 已結束
func (q *RedisStreamAuditQueueImpl) deliver(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage, redelivered bool) bool {
	for _, msg := range msgs {
		if redelivered && q.exhausted(ctx, msg.ID) {
			continue
		}
		txn, err := decodeTxn(msg)
		if err != nil {
			mqLogger.Warn("dropping undecodable audit entry", zap.String("message_id", msg.ID), zap.Error(err))
			q.ack(ctx, msg.ID)
			continue
		}

		id := msg.ID
		d := Delivery{
			Data: txn,
			Ack:  func() { q.ack(ctx, id) },
			Nack: func(requeue bool) {
				if requeue {
					// 留在 PEL，ClaimMinIdleTime 之後由 reclaimLoop 重送
					return
				}
				mqLogger.Warn("audit entry rejected", zap.String("message_id", id), zap.String("txn_type", string(txn.Type)))
				q.ack(ctx, id)
			},
		}
		select {
		case out <- d:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// exhausted 投遞次數達上限的訊息直接 ack 丟棄
func (q *RedisStreamAuditQueueImpl) exhausted(ctx context.Context, id string) bool {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.stream,
		Group:  q.group,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		return false
	}
	if int(pending[0].RetryCount) < q.cfg.MaxRetryCount {
		return false
	}
	mqLogger.Error("audit entry exceeded retries, discarding",
		zap.String("message_id", id),
		zap.Int64("retries", pending[0].RetryCount),
	)
	q.ack(ctx, id)
	return true
}

func (q *RedisStreamAuditQueueImpl) ack(ctx context.Context, id string) {
	if err := q.client.XAck(context.WithoutCancel(ctx), q.stream, q.group, id).Err(); err != nil {
		mqLogger.Error("xack failed", zap.String("message_id", id), zap.Error(err))
	}
}

func decodeTxn(msg redis.XMessage) (*model.Txn, error) {
	raw, ok := msg.Values[fieldPayload].(string)
	if !ok {
		return nil, fmt.Errorf("missing %q field", fieldPayload)
	}
	var txn model.Txn
	if err := json.Unmarshal([]byte(raw), &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}
