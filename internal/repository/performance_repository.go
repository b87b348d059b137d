package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/database"
	"go-gin-ticket-inventory/internal/model"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"time"

	"github.com/uptrace/bun"
)

type PerformanceRepository interface {
	Create(ctx context.Context, db bun.IDB, performance *model.Performance) (*model.Performance, error)
	FindByID(ctx context.Context, db bun.IDB, id int64) (*model.Performance, error)

	// Transaction methods
	LockByIDs(ctx context.Context, tx bun.IDB, ids []int64) ([]*model.Performance, error)
	IncreaseCapacity(ctx context.Context, tx bun.IDB, id int64, by int) error
}

type PerformanceRepositoryImpl struct{}

func NewPerformanceRepository() PerformanceRepository {
	return &PerformanceRepositoryImpl{}
}

func (r *PerformanceRepositoryImpl) Create(ctx context.Context, db bun.IDB, performance *model.Performance) (*model.Performance, error) {
	if performance.Capacity < 0 {
		return nil, apperrors.ErrInvalidInput
	}
	_, err := db.NewInsert().Model(performance).Returning("*").Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create performance: %w", err)
	}
	return performance, nil
}

func (r *PerformanceRepositoryImpl) FindByID(ctx context.Context, db bun.IDB, id int64) (*model.Performance, error) {
	var performance model.Performance
	err := db.NewSelect().Model(&performance).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrPerformanceNotFound
		}
		return nil, err
	}
	return &performance, nil
}

// LockByIDs 依 id 遞增順序鎖定場次列 (Postgres FOR UPDATE)，任何一筆不存在即失敗
func (r *PerformanceRepositoryImpl) LockByIDs(ctx context.Context, tx bun.IDB, ids []int64) ([]*model.Performance, error) {
	performances := make([]*model.Performance, 0, len(ids))
	if len(ids) == 0 {
		return performances, nil
	}
	q := tx.NewSelect().
		Model(&performances).
		Where("p.id IN (?)", bun.In(ids)).
		Order("p.id ASC")
	if database.IsPostgres(tx) {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	if len(performances) != len(ids) {
		return nil, apperrors.ErrPerformanceNotFound
	}
	return performances, nil
}

// IncreaseCapacity 已售出後容量只能增加
func (r *PerformanceRepositoryImpl) IncreaseCapacity(ctx context.Context, tx bun.IDB, id int64, by int) error {
	if by <= 0 {
		return apperrors.ErrInvalidInput
	}
	result, err := tx.NewUpdate().
		Model((*model.Performance)(nil)).
		Set("capacity = capacity + ?", by).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.ErrPerformanceNotFound
	}
	return nil
}
