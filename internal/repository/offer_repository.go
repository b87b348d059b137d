package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/database"
	"go-gin-ticket-inventory/internal/model"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"

	"github.com/uptrace/bun"
)

type OfferRepository interface {
	Create(ctx context.Context, db bun.IDB, offer *model.Offer, kind *model.VoucherKind) (*model.Offer, error)
	FindByID(ctx context.Context, db bun.IDB, id int64) (*model.Offer, error)
	FindByKindAndPerformance(ctx context.Context, db bun.IDB, kindID int64, performanceID int64) (*model.Offer, error)
	ListByPerformance(ctx context.Context, db bun.IDB, performanceID int64) ([]*model.Offer, error)
	ListBundleOffers(ctx context.Context, db bun.IDB) ([]*model.Offer, error)

	// Transaction methods
	LockByID(ctx context.Context, tx bun.IDB, id int64) (*model.Offer, error)
}

type OfferRepositoryImpl struct{}

func NewOfferRepository() OfferRepository {
	return &OfferRepositoryImpl{}
}

func (r *OfferRepositoryImpl) Create(ctx context.Context, db bun.IDB, offer *model.Offer, kind *model.VoucherKind) (*model.Offer, error) {
	if err := offer.Validate(kind); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidOffer, err)
	}
	if kind.IsBundle() {
		offer.PerformanceID = nil
	}

	_, err := db.NewInsert().Model(offer).Returning("*").Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer, nil
}

func (r *OfferRepositoryImpl) FindByID(ctx context.Context, db bun.IDB, id int64) (*model.Offer, error) {
	var offer model.Offer
	err := db.NewSelect().Model(&offer).Where("o.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrInvalidOffer
		}
		return nil, err
	}
	return &offer, nil
}

// LockByID 有上限的套票以販售規則列作為交易內的互斥點 (Postgres FOR UPDATE)
func (r *OfferRepositoryImpl) LockByID(ctx context.Context, tx bun.IDB, id int64) (*model.Offer, error) {
	var offer model.Offer
	q := tx.NewSelect().Model(&offer).Where("o.id = ?", id)
	if database.IsPostgres(tx) {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrInvalidOffer
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) FindByKindAndPerformance(ctx context.Context, db bun.IDB, kindID int64, performanceID int64) (*model.Offer, error) {
	var offer model.Offer
	err := db.NewSelect().
		Model(&offer).
		Where("o.voucher_kind_id = ?", kindID).
		Where("o.performance_id = ?", performanceID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrInvalidOffer
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) ListByPerformance(ctx context.Context, db bun.IDB, performanceID int64) ([]*model.Offer, error) {
	offers := make([]*model.Offer, 0)
	err := db.NewSelect().
		Model(&offers).
		Where("o.performance_id = ?", performanceID).
		Order("o.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepositoryImpl) ListBundleOffers(ctx context.Context, db bun.IDB) ([]*model.Offer, error) {
	offers := make([]*model.Offer, 0)
	err := db.NewSelect().
		Model(&offers).
		Where("o.performance_id IS NULL").
		Order("o.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return offers, nil
}
