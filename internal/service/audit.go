package service

import (
	"context"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/queue"
	"go-gin-ticket-inventory/pkg/logger"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const auditPublishTimeout = 2 * time.Second

// auditRecorder 稽核紀錄只送出不等待；失敗只記錄，不影響已完成的庫存異動
type auditRecorder struct {
	queue queue.AuditQueue
}

func (a auditRecorder) record(ctx context.Context, txn *model.Txn) {
	if a.queue == nil {
		return
	}
	// 請求結束不應中斷稽核發送
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditPublishTimeout)
	defer cancel()

	if err := a.queue.PublishTxn(ctx, txn); err != nil {
		logger.WithComponent("mq").Warn("failed to publish audit txn",
			zap.String("txn_type", string(txn.Type)),
			zap.Int64("customer_id", txn.CustomerID),
			zap.String("unit_ids", txn.UnitIDs),
			zap.Error(err),
		)
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func idsOf(units []*model.InventoryUnit) []int64 {
	ids := make([]int64, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	return ids
}

func holderOf(u *model.InventoryUnit) int64 {
	if u.CustomerID == nil {
		return model.GenericCustomerID
	}
	return *u.CustomerID
}
