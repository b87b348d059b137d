package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaAuditQueueImpl struct {
	brokers []string
	topic   string
	groupID string
	writer  *kafka.Writer

	mu     sync.Mutex
	reader *kafka.Reader
}

// NewKafkaAuditQueue 以顧客 id 作為 key，同一顧客的紀錄落在同一 partition
func NewKafkaAuditQueue(brokers []string, topic, groupID string) (AuditQueue, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka audit queue: no brokers configured")
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaAuditQueueImpl{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		writer:  writer,
	}, nil
}

func (q *KafkaAuditQueueImpl) PublishTxn(ctx context.Context, txn *model.Txn) error {
	msgBytes, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("marshal txn: %w", err)
	}
	err = q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(txn.CustomerID, 10)),
		Value: msgBytes,
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (q *KafkaAuditQueueImpl) SubscribeTxns(ctx context.Context) (<-chan Delivery, error) {
	q.mu.Lock()
	if q.reader != nil {
		q.mu.Unlock()
		return nil, errors.New("kafka audit queue: already subscribed")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  q.brokers,
		Topic:    q.topic,
		GroupID:  q.groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	q.reader = reader
	q.mu.Unlock()

	out := make(chan Delivery)
	go func() {
		defer close(out)
		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return
				}
				mqLogger.Error("kafka fetch failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			var txn model.Txn
			if err := json.Unmarshal(msg.Value, &txn); err != nil {
				mqLogger.Warn("unmarshal txn failed", zap.Int64("offset", msg.Offset), zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			d := Delivery{
				Data: &txn,
				Ack: func() {
					if err := reader.CommitMessages(ctx, msg); err != nil {
						mqLogger.Error("kafka commit failed", zap.Int64("offset", msg.Offset), zap.Error(err))
					}
				},
				Nack: func(requeue bool) {
					if requeue {
						// 不 commit，rebalance 或重啟後從上次 commit 的 offset 重新讀取
						mqLogger.Info("message nack(requeue), offset left uncommitted", zap.Int64("offset", msg.Offset))
						return
					}
					if err := reader.CommitMessages(ctx, msg); err != nil {
						mqLogger.Error("kafka commit discard failed", zap.Int64("offset", msg.Offset), zap.Error(err))
					}
				},
			}
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (q *KafkaAuditQueueImpl) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	var errs []error
	if q.reader != nil {
		errs = append(errs, q.reader.Close())
	}
	errs = append(errs, q.writer.Close())
	return errors.Join(errs...)
}
