package queue

import (
	"context"
	"go-gin-ticket-inventory/internal/model"
)

type Delivery struct {
	Data *model.Txn
	Ack  func()
	Nack func(requeue bool)
}

// AuditQueue 稽核紀錄的傳遞管道；發送端不等待寫入資料庫
type AuditQueue interface {
	// 發送稽核紀錄到隊列
	PublishTxn(ctx context.Context, txn *model.Txn) error
	// 訂閱稽核紀錄
	SubscribeTxns(ctx context.Context) (<-chan Delivery, error)
	Close() error
}

type AuditQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.Txn
}

func NewAuditQueue(bufferSize int) AuditQueue {
	return &AuditQueueImpl{
		ch: make(chan *model.Txn, bufferSize),
	}
}

func (q *AuditQueueImpl) PublishTxn(ctx context.Context, txn *model.Txn) error {
	select {
	case q.ch <- txn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *AuditQueueImpl) SubscribeTxns(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case txn, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: txn,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							select {
							case q.ch <- txn:
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (q *AuditQueueImpl) Close() error {
	return nil
}
