package ledger

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/cache"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/pkg/logger"
	"math"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

var ledgerLogger = logger.WithComponent("ledger")

// CapacityLedger 場次座位帳：已售 (劃位且未銷毀) + 配票中暫扣 <= 容量
type CapacityLedger interface {
	RemainingCapacity(ctx context.Context, db bun.IDB, performance *model.Performance) (int, error)
	UnitsSoldOfKind(ctx context.Context, db bun.IDB, performanceID *int64, kindID int64) (int, error)
	Reserve(ctx context.Context, performanceID int64, count int) error
	Release(ctx context.Context, performanceID int64, count int) error
	Stats(ctx context.Context, db bun.IDB, performance *model.Performance) (*model.PerformanceStats, error)
}

type CapacityLedgerImpl struct {
	unitRepo repository.InventoryUnitRepository
	holds    cache.HoldCounter
}

func NewCapacityLedger(unitRepo repository.InventoryUnitRepository, holds cache.HoldCounter) CapacityLedger {
	return &CapacityLedgerImpl{
		unitRepo: unitRepo,
		holds:    holds,
	}
}

// RemainingCapacity 不會小於 0；由呼叫端拒絕超量請求
func (l *CapacityLedgerImpl) RemainingCapacity(ctx context.Context, db bun.IDB, performance *model.Performance) (int, error) {
	sold, err := l.unitRepo.CountBound(ctx, db, performance.ID)
	if err != nil {
		return 0, err
	}
	held, err := l.holds.Held(ctx, performance.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to read holds: %w", err)
	}
	return max(0, performance.Capacity-sold-held), nil
}

func (l *CapacityLedgerImpl) UnitsSoldOfKind(ctx context.Context, db bun.IDB, performanceID *int64, kindID int64) (int, error) {
	return l.unitRepo.CountOfKind(ctx, db, performanceID, kindID)
}

func (l *CapacityLedgerImpl) Reserve(ctx context.Context, performanceID int64, count int) error {
	if count == 0 {
		return nil
	}
	held, err := l.holds.Reserve(ctx, performanceID, count)
	if err != nil {
		return err
	}
	ledgerLogger.Debug("hold reserved",
		zap.Int64("performance_id", performanceID),
		zap.Int("count", count),
		zap.Int("held", held),
	)
	return nil
}

func (l *CapacityLedgerImpl) Release(ctx context.Context, performanceID int64, count int) error {
	if count == 0 {
		return nil
	}
	held, err := l.holds.Release(ctx, performanceID, count)
	if err != nil {
		return err
	}
	ledgerLogger.Debug("hold released",
		zap.Int64("performance_id", performanceID),
		zap.Int("count", count),
		zap.Int("held", held),
	)
	return nil
}

// Stats 門口報到用的場次概況
func (l *CapacityLedgerImpl) Stats(ctx context.Context, db bun.IDB, performance *model.Performance) (*model.PerformanceStats, error) {
	sold, err := l.unitRepo.CountBound(ctx, db, performance.ID)
	if err != nil {
		return nil, err
	}
	checkedIn, err := l.unitRepo.CountCheckedIn(ctx, db, performance.ID)
	if err != nil {
		return nil, err
	}
	held, err := l.holds.Held(ctx, performance.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read holds: %w", err)
	}

	stats := &model.PerformanceStats{
		PerformanceID: performance.ID,
		Capacity:      performance.Capacity,
		Sold:          sold,
		CheckedIn:     checkedIn,
		Held:          held,
		Remaining:     max(0, performance.Capacity-sold-held),
	}
	if performance.Capacity > 0 {
		stats.PercentSold = math.Round(float64(sold)*1000/float64(performance.Capacity)) / 10
	}
	return stats, nil
}
