package resolver

import (
	"context"
	"errors"
	"go-gin-ticket-inventory/internal/ledger"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/repository"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"time"

	"github.com/uptrace/bun"
)

// Clock 目前時間來源，測試時可替換
type Clock func() time.Time

type Resolver interface {
	// Resolve 販售模式：開放對象 → 場次狀態 → 販售區間 → 數量
	Resolve(ctx context.Context, db bun.IDB, offer *model.Offer, customer *model.Customer, promoCode string) (model.AdjustedOffer, error)
	// ResolveForReservation 已持有的票劃位：場次狀態 → 劃位截止 → 數量
	ResolveForReservation(ctx context.Context, db bun.IDB, offer *model.Offer) (model.AdjustedOffer, error)
	Now() time.Time
}

type ResolverImpl struct {
	kindRepo        repository.VoucherKindRepository
	performanceRepo repository.PerformanceRepository
	ledger          ledger.CapacityLedger
	clock           Clock
}

func NewResolver(
	kindRepo repository.VoucherKindRepository,
	performanceRepo repository.PerformanceRepository,
	ledger ledger.CapacityLedger,
	clock Clock,
) Resolver {
	if clock == nil {
		clock = time.Now
	}
	return &ResolverImpl{
		kindRepo:        kindRepo,
		performanceRepo: performanceRepo,
		ledger:          ledger,
		clock:           clock,
	}
}

func (r *ResolverImpl) Now() time.Time {
	return r.clock()
}

func (r *ResolverImpl) Resolve(ctx context.Context, db bun.IDB, offer *model.Offer, customer *model.Customer, promoCode string) (model.AdjustedOffer, error) {
	in, err := r.buildInput(ctx, db, offer)
	if err != nil {
		return model.AdjustedOffer{}, err
	}
	in.Customer = customer
	in.PromoCode = promoCode

	if in.Kind.IsBundle() {
		return Evaluate(in, bundleGates), nil
	}
	return Evaluate(in, saleGates), nil
}

func (r *ResolverImpl) ResolveForReservation(ctx context.Context, db bun.IDB, offer *model.Offer) (model.AdjustedOffer, error) {
	in, err := r.buildInput(ctx, db, offer)
	if err != nil {
		return model.AdjustedOffer{}, err
	}
	return Evaluate(in, reservationGates), nil
}

func (r *ResolverImpl) buildInput(ctx context.Context, db bun.IDB, offer *model.Offer) (Input, error) {
	if offer == nil {
		return Input{}, apperrors.ErrInvalidOffer
	}
	kind, err := r.kindRepo.FindByID(ctx, db, offer.VoucherKindID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVoucherKindNotFound) {
			return Input{}, apperrors.ErrInvalidOffer
		}
		return Input{}, err
	}

	in := Input{
		Offer:     offer,
		Kind:      kind,
		Now:       r.clock(),
		Remaining: model.Unlimited(),
	}

	// 套票不綁場次，只受套票本身的上限
	if kind.IsBundle() {
		if offer.MaxSalesForType != nil {
			if in.SoldOfKind, err = r.ledger.UnitsSoldOfKind(ctx, db, nil, kind.ID); err != nil {
				return Input{}, err
			}
		}
		return in, nil
	}

	if offer.PerformanceID == nil {
		return in, nil
	}
	performance, err := r.performanceRepo.FindByID(ctx, db, *offer.PerformanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPerformanceNotFound) {
			return in, nil
		}
		return Input{}, err
	}
	in.Performance = performance

	remaining, err := r.ledger.RemainingCapacity(ctx, db, performance)
	if err != nil {
		return Input{}, err
	}
	in.Remaining = model.Bounded(remaining)

	if offer.MaxSalesForType != nil {
		if in.SoldOfKind, err = r.ledger.UnitsSoldOfKind(ctx, db, offer.PerformanceID, kind.ID); err != nil {
			return Input{}, err
		}
	}
	return in, nil
}
