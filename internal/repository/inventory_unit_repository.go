package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"time"

	"github.com/uptrace/bun"
)

type InventoryUnitRepository interface {
	FindByID(ctx context.Context, db bun.IDB, id int64) (*model.InventoryUnit, error)
	FindByIDs(ctx context.Context, db bun.IDB, ids []int64) ([]*model.InventoryUnit, error)
	ListByCustomer(ctx context.Context, db bun.IDB, customerID int64) ([]*model.InventoryUnit, error)
	ListByBundle(ctx context.Context, db bun.IDB, bundleID int64) ([]*model.InventoryUnit, error)

	// 計數一律排除已銷毀的票
	CountBound(ctx context.Context, db bun.IDB, performanceID int64) (int, error)
	CountOfKind(ctx context.Context, db bun.IDB, performanceID *int64, kindID int64) (int, error)
	CountCheckedIn(ctx context.Context, db bun.IDB, performanceID int64) (int, error)

	// Transaction methods
	Create(ctx context.Context, tx bun.IDB, unit *model.InventoryUnit) error
	Update(ctx context.Context, tx bun.IDB, unit *model.InventoryUnit, columns ...string) error
	SoftDelete(ctx context.Context, tx bun.IDB, ids []int64, actorID int64, at time.Time) (int, error)
}

type InventoryUnitRepositoryImpl struct{}

func NewInventoryUnitRepository() InventoryUnitRepository {
	return &InventoryUnitRepositoryImpl{}
}

func (r *InventoryUnitRepositoryImpl) FindByID(ctx context.Context, db bun.IDB, id int64) (*model.InventoryUnit, error) {
	var unit model.InventoryUnit
	err := db.NewSelect().Model(&unit).Where("iu.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByIDs 包含已銷毀的票，依 id 排序；有任何一筆不存在即回傳 ErrUnitNotFound
func (r *InventoryUnitRepositoryImpl) FindByIDs(ctx context.Context, db bun.IDB, ids []int64) ([]*model.InventoryUnit, error) {
	units := make([]*model.InventoryUnit, 0, len(ids))
	if len(ids) == 0 {
		return units, nil
	}

	err := db.NewSelect().
		Model(&units).
		Where("iu.id IN (?)", bun.In(ids)).
		Order("iu.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	if len(units) != countDistinct(ids) {
		return nil, apperrors.ErrUnitNotFound
	}
	return units, nil
}

func (r *InventoryUnitRepositoryImpl) ListByCustomer(ctx context.Context, db bun.IDB, customerID int64) ([]*model.InventoryUnit, error) {
	units := make([]*model.InventoryUnit, 0)
	err := db.NewSelect().
		Model(&units).
		Where("iu.customer_id = ?", customerID).
		Where("iu.deleted_at IS NULL").
		Order("iu.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return units, nil
}

func (r *InventoryUnitRepositoryImpl) ListByBundle(ctx context.Context, db bun.IDB, bundleID int64) ([]*model.InventoryUnit, error) {
	units := make([]*model.InventoryUnit, 0)
	err := db.NewSelect().
		Model(&units).
		Where("iu.bundle_id = ?", bundleID).
		Order("iu.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return units, nil
}

// CountBound 已劃位到場次的票數 (即已售座位)
func (r *InventoryUnitRepositoryImpl) CountBound(ctx context.Context, db bun.IDB, performanceID int64) (int, error) {
	n, err := db.NewSelect().
		Model((*model.InventoryUnit)(nil)).
		Where("iu.performance_id = ?", performanceID).
		Where("iu.deleted_at IS NULL").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count bound units: %w", err)
	}
	return n, nil
}

// CountOfKind performanceID 為 nil 時計算該票種全部已發出的票 (套票上限用)
func (r *InventoryUnitRepositoryImpl) CountOfKind(ctx context.Context, db bun.IDB, performanceID *int64, kindID int64) (int, error) {
	q := db.NewSelect().
		Model((*model.InventoryUnit)(nil)).
		Where("iu.voucher_kind_id = ?", kindID).
		Where("iu.deleted_at IS NULL")
	if performanceID != nil {
		q = q.Where("iu.performance_id = ?", *performanceID)
	}
	n, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count units of kind: %w", err)
	}
	return n, nil
}

func (r *InventoryUnitRepositoryImpl) CountCheckedIn(ctx context.Context, db bun.IDB, performanceID int64) (int, error) {
	n, err := db.NewSelect().
		Model((*model.InventoryUnit)(nil)).
		Where("iu.performance_id = ?", performanceID).
		Where("iu.state = ?", model.UnitStateCheckedIn).
		Where("iu.deleted_at IS NULL").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count checked-in units: %w", err)
	}
	return n, nil
}

func (r *InventoryUnitRepositoryImpl) Create(ctx context.Context, tx bun.IDB, unit *model.InventoryUnit) error {
	if !unit.State.IsValid() {
		return apperrors.ErrInvalidInput
	}
	if _, err := tx.NewInsert().Model(unit).Returning("*").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create inventory unit: %w", err)
	}
	return nil
}

// Update 只寫入指定欄位，updated_at 一律更新
func (r *InventoryUnitRepositoryImpl) Update(ctx context.Context, tx bun.IDB, unit *model.InventoryUnit, columns ...string) error {
	unit.UpdatedAt = time.Now().UTC()
	columns = append(columns, "updated_at")

	result, err := tx.NewUpdate().
		Model(unit).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update inventory unit %d: %w", unit.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.ErrUnitNotFound
	}
	return nil
}

// SoftDelete 標記銷毀，已銷毀的票不重複計入；回傳實際銷毀張數
func (r *InventoryUnitRepositoryImpl) SoftDelete(ctx context.Context, tx bun.IDB, ids []int64, actorID int64, at time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := tx.NewUpdate().
		Model((*model.InventoryUnit)(nil)).
		Set("deleted_at = ?", at).
		Set("destroyed_by = ?", actorID).
		Set("updated_at = ?", at).
		Where("id IN (?)", bun.In(ids)).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to destroy inventory units: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func countDistinct(ids []int64) int {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
