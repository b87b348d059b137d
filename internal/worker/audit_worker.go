package worker

import (
	"context"
	"go-gin-ticket-inventory/internal/queue"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/pkg/logger"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

type AuditWorker interface {
	// 訂閱稽核隊列並寫入 txns，直到 ctx 結束
	Run(ctx context.Context) error
}

type AuditWorkerImpl struct {
	db      bun.IDB
	txnRepo repository.TxnRepository
	queue   queue.AuditQueue
}

func NewAuditWorker(db bun.IDB, txnRepo repository.TxnRepository, queue queue.AuditQueue) AuditWorker {
	return &AuditWorkerImpl{
		db:      db,
		txnRepo: txnRepo,
		queue:   queue,
	}
}

func (w *AuditWorkerImpl) Run(ctx context.Context) error {
	msgs, err := w.queue.SubscribeTxns(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")
	for msg := range msgs {
		// 稽核紀錄只新增；寫入失敗時留在隊列稍後重試
		if err := w.txnRepo.Create(ctx, w.db, msg.Data); err != nil {
			log.Warn("persist txn failed, will retry",
				zap.String("txn_type", string(msg.Data.Type)),
				zap.Int64("customer_id", msg.Data.CustomerID),
				zap.Error(err),
			)
			msg.Nack(true)
			continue
		}
		msg.Ack()
	}
	return nil
}
