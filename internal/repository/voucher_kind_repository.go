package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"

	"github.com/uptrace/bun"
)

type VoucherKindRepository interface {
	Create(ctx context.Context, db bun.IDB, kind *model.VoucherKind) (*model.VoucherKind, error)
	FindByID(ctx context.Context, db bun.IDB, id int64) (*model.VoucherKind, error)
	ListBundles(ctx context.Context, db bun.IDB) ([]*model.VoucherKind, error)
}

type VoucherKindRepositoryImpl struct{}

func NewVoucherKindRepository() VoucherKindRepository {
	return &VoucherKindRepositoryImpl{}
}

// Create 寫入票種；套票一併寫入其組成
func (r *VoucherKindRepositoryImpl) Create(ctx context.Context, db bun.IDB, kind *model.VoucherKind) (*model.VoucherKind, error) {
	if !kind.Category.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}
	if kind.Audience == "" {
		kind.Audience = model.AudienceAnyone
	}
	if !kind.IsBundle() && len(kind.Components) > 0 {
		return nil, apperrors.ErrInvalidInput
	}

	_, err := db.NewInsert().Model(kind).Returning("*").Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create voucher kind: %w", err)
	}

	for i := range kind.Components {
		c := &kind.Components[i]
		if c.Quantity <= 0 {
			return nil, apperrors.ErrInvalidInput
		}
		c.BundleKindID = kind.ID
		if _, err := db.NewInsert().Model(c).Returning("*").Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to create bundle component: %w", err)
		}
	}

	return kind, nil
}

func (r *VoucherKindRepositoryImpl) FindByID(ctx context.Context, db bun.IDB, id int64) (*model.VoucherKind, error) {
	var kind model.VoucherKind
	err := db.NewSelect().Model(&kind).Where("vk.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrVoucherKindNotFound
		}
		return nil, err
	}

	if kind.IsBundle() {
		if err := r.loadComponents(ctx, db, &kind); err != nil {
			return nil, err
		}
	}

	return &kind, nil
}

func (r *VoucherKindRepositoryImpl) ListBundles(ctx context.Context, db bun.IDB) ([]*model.VoucherKind, error) {
	kinds := make([]*model.VoucherKind, 0)
	err := db.NewSelect().
		Model(&kinds).
		Where("vk.category = ?", model.CategoryBundle).
		Order("vk.valid_until DESC", "vk.price DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if err := r.loadComponents(ctx, db, k); err != nil {
			return nil, err
		}
	}
	return kinds, nil
}

func (r *VoucherKindRepositoryImpl) loadComponents(ctx context.Context, db bun.IDB, kind *model.VoucherKind) error {
	components := make([]model.BundleComponent, 0)
	err := db.NewSelect().
		Model(&components).
		Where("bc.bundle_kind_id = ?", kind.ID).
		Order("bc.id ASC").
		Scan(ctx)
	if err != nil {
		return err
	}

	for i := range components {
		var child model.VoucherKind
		err := db.NewSelect().Model(&child).Where("vk.id = ?", components[i].ComponentKindID).Scan(ctx)
		if err != nil {
			if isNoRows(err) {
				return apperrors.ErrVoucherKindNotFound
			}
			return err
		}
		components[i].Kind = &child
	}

	kind.Components = components
	return nil
}
