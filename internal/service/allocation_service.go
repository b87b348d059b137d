package service

import (
	"context"
	"errors"
	"fmt"
	"go-gin-ticket-inventory/internal/cache"
	"go-gin-ticket-inventory/internal/ledger"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/queue"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/internal/resolver"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"go-gin-ticket-inventory/pkg/logger"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

type AllocationService interface {
	// Allocate 在場次鎖內重新解析販售規則，全部成功或全部不寫入
	Allocate(ctx context.Context, req model.AllocationRequest) ([]*model.InventoryUnit, error)
}

type AllocationServiceImpl struct {
	db              *bun.DB
	offerRepo       repository.OfferRepository
	kindRepo        repository.VoucherKindRepository
	customerRepo    repository.CustomerRepository
	performanceRepo repository.PerformanceRepository
	unitRepo        repository.InventoryUnitRepository
	resolver        resolver.Resolver
	ledger          ledger.CapacityLedger
	locker          cache.PerformanceLocker
	audit           auditRecorder
	log             *zap.Logger
}

func NewAllocationService(
	db *bun.DB,
	offerRepo repository.OfferRepository,
	kindRepo repository.VoucherKindRepository,
	customerRepo repository.CustomerRepository,
	performanceRepo repository.PerformanceRepository,
	unitRepo repository.InventoryUnitRepository,
	resolver resolver.Resolver,
	ledger ledger.CapacityLedger,
	locker cache.PerformanceLocker,
	auditQueue queue.AuditQueue,
) AllocationService {
	return &AllocationServiceImpl{
		db:              db,
		offerRepo:       offerRepo,
		kindRepo:        kindRepo,
		customerRepo:    customerRepo,
		performanceRepo: performanceRepo,
		unitRepo:        unitRepo,
		resolver:        resolver,
		ledger:          ledger,
		locker:          locker,
		audit:           auditRecorder{queue: auditQueue},
		log:             logger.WithComponent("allocation"),
	}
}

func (s *AllocationServiceImpl) Allocate(ctx context.Context, req model.AllocationRequest) ([]*model.InventoryUnit, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	if !req.PurchaseMethod.IsValid() {
		return nil, apperrors.ErrInvalidPurchaseMethod
	}

	offer, err := s.offerRepo.FindByID(ctx, s.db, req.OfferID)
	if err != nil {
		return nil, err
	}
	kind, err := s.kindRepo.FindByID(ctx, s.db, offer.VoucherKindID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVoucherKindNotFound) {
			return nil, apperrors.ErrInvalidOffer
		}
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, s.db, req.CustomerID)
	if err != nil {
		return nil, err
	}

	// 套票上限以販售規則計算，不屬於任何場次；先於場次鎖取得
	cappedBundle := kind.IsBundle() && offer.MaxSalesForType != nil
	if cappedBundle {
		offerLease, err := s.locker.AcquireOffer(ctx, offer.ID)
		if err != nil {
			return nil, err
		}
		defer offerLease.Release(context.WithoutCancel(ctx))
	}

	lockIDs := performancesTouchedBy(offer, kind)
	lease, err := s.locker.Acquire(ctx, lockIDs)
	if err != nil {
		return nil, err
	}
	defer lease.Release(context.WithoutCancel(ctx))

	// 暫扣在交易提交前登記，並在釋放場次鎖之前扣回
	held := make(map[int64]int)
	defer func() {
		for performanceID, n := range held {
			if err := s.ledger.Release(context.WithoutCancel(ctx), performanceID, n); err != nil {
				s.log.Error("failed to release hold",
					zap.Int64("performance_id", performanceID),
					zap.Int("count", n),
					zap.Error(err),
				)
			}
		}
	}()

	var units []*model.InventoryUnit
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		performances, err := s.performanceRepo.LockByIDs(ctx, tx, lockIDs)
		if err != nil {
			if errors.Is(err, apperrors.ErrPerformanceNotFound) {
				return fmt.Errorf("%w: %v", apperrors.ErrInvalidOffer, err)
			}
			return err
		}
		if cappedBundle {
			if _, err := s.offerRepo.LockByID(ctx, tx, offer.ID); err != nil {
				return err
			}
		}

		adjusted, err := s.resolver.Resolve(ctx, tx, offer, customer, req.PromoCode)
		if err != nil {
			return err
		}
		if !adjusted.Visible() {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidOffer, adjusted.Explanation())
		}
		if !adjusted.Quantity().Covers(req.Quantity) {
			remaining, _ := adjusted.Quantity().Value()
			return &apperrors.CapacityExceededError{Requested: req.Quantity, Remaining: remaining}
		}

		a := &allocation{
			svc:          s,
			tx:           tx,
			offer:        offer,
			req:          req,
			performances: performances,
			offers:       make(map[bindKey]*model.Offer),
			counts:       make(map[int64]int),
			remaining:    -1,
		}
		if n, ok := adjusted.Quantity().Value(); ok {
			a.remaining = n
		}

		// 先確認劃位目標容得下整筆請求，失敗時回報的剩餘份數才是建立任何票券之前的數字
		fits, err := a.wholeRequests(ctx, bindTargets(offer, kind))
		if err != nil {
			return err
		}
		if fits >= 0 && (a.remaining < 0 || fits < a.remaining) {
			a.remaining = fits
		}
		if fits >= 0 && fits < req.Quantity {
			cause := a.cause
			if cause == nil {
				cause = fmt.Errorf("%w: not enough seats to reserve %d requests", apperrors.ErrInvalidRedemption, req.Quantity)
			}
			return &apperrors.CapacityExceededError{Requested: req.Quantity, Remaining: a.remaining, Cause: cause}
		}

		if kind.IsBundle() {
			err = a.createBundles(ctx, kind)
		} else {
			err = a.createUnits(ctx, kind)
		}
		if err != nil {
			return err
		}

		for _, performanceID := range sortedKeys(a.counts) {
			n := a.counts[performanceID]
			if err := s.ledger.Reserve(ctx, performanceID, n); err != nil {
				return err
			}
			held[performanceID] = n
		}

		units = a.units
		return nil
	})
	if err != nil {
		s.log.Info("allocation rejected",
			zap.Int64("offer_id", req.OfferID),
			zap.Int64("customer_id", req.CustomerID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("allocation committed",
		zap.Int64("offer_id", req.OfferID),
		zap.Int64("customer_id", customer.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int("units", len(units)),
	)

	s.audit.record(ctx, &model.Txn{
		Type:           model.TxnTicketPurchase,
		CustomerID:     customer.ID,
		PerformanceID:  offer.PerformanceID,
		UnitIDs:        joinIDs(idsOf(units)),
		Comments:       fmt.Sprintf("%d x %s", req.Quantity, kind.Name),
		PurchaseMethod: req.PurchaseMethod,
		ActorID:        req.ActorID,
	})

	return units, nil
}

// allocation 單次配票交易內的狀態
type allocation struct {
	svc          *AllocationServiceImpl
	tx           bun.IDB
	offer        *model.Offer
	req          model.AllocationRequest
	performances []*model.Performance
	offers       map[bindKey]*model.Offer
	units        []*model.InventoryUnit
	counts       map[int64]int // 每個場次新劃位張數
	remaining    int           // 建立票券前可容納的請求份數；-1 為不限
	cause        error         // 劃位目標不可用的原因
}

type bindKey struct {
	kindID        int64
	performanceID int64
}

// bindTarget 每份請求需要在某場次劃位的某票種張數
type bindTarget struct {
	kind          *model.VoucherKind
	performanceID int64
	perRequest    int
}

// bindTargets 一般票種綁定販售規則的場次 (否則票種指定場次)；套票只有指定場次的組成票需要劃位
func bindTargets(offer *model.Offer, kind *model.VoucherKind) []bindTarget {
	if !kind.IsBundle() {
		target := offer.PerformanceID
		if target == nil {
			target = kind.UniquePerformanceID
		}
		if target == nil {
			return nil
		}
		return []bindTarget{{kind: kind, performanceID: *target, perRequest: 1}}
	}

	var targets []bindTarget
	for _, c := range kind.Components {
		if c.Kind == nil || !c.Kind.IsMonogamous() {
			continue
		}
		i := slices.IndexFunc(targets, func(t bindTarget) bool {
			return t.kind.ID == c.Kind.ID && t.performanceID == *c.Kind.UniquePerformanceID
		})
		if i >= 0 {
			targets[i].perRequest += c.Quantity
			continue
		}
		targets = append(targets, bindTarget{kind: c.Kind, performanceID: *c.Kind.UniquePerformanceID, perRequest: c.Quantity})
	}
	return targets
}

// wholeRequests 劃位目標能容納的完整請求份數；沒有目標時回傳 -1
func (a *allocation) wholeRequests(ctx context.Context, targets []bindTarget) (int, error) {
	fits := -1
	limit := func(n int) {
		if fits < 0 || n < fits {
			fits = n
		}
	}

	perPerformance := make(map[int64]int)
	for _, t := range targets {
		if t.perRequest <= 0 {
			continue
		}
		perPerformance[t.performanceID] += t.perRequest

		offer, err := a.offerFor(ctx, t.kind, t.performanceID)
		if errors.Is(err, apperrors.ErrInvalidOffer) {
			a.cause = fmt.Errorf("%w: %s has no offer for performance %d", apperrors.ErrInvalidRedemption, t.kind.Name, t.performanceID)
			limit(0)
			continue
		}
		if err != nil {
			return 0, err
		}
		adjusted, err := a.svc.resolver.ResolveForReservation(ctx, a.tx, offer)
		if err != nil {
			return 0, err
		}
		if !adjusted.Available() {
			a.cause = fmt.Errorf("%w: %s", apperrors.ErrInvalidRedemption, adjusted.Explanation())
			limit(0)
			continue
		}
		if n, ok := adjusted.Quantity().Value(); ok {
			limit(n / t.perRequest)
		}
	}

	// 同場次不同票種共用座位
	for performanceID, n := range perPerformance {
		performance := findPerformance(a.performances, performanceID)
		if performance == nil {
			return 0, fmt.Errorf("%w: performance %d is not locked", apperrors.ErrInvalidOffer, performanceID)
		}
		remaining, err := a.svc.ledger.RemainingCapacity(ctx, a.tx, performance)
		if err != nil {
			return 0, err
		}
		limit(remaining / n)
	}
	return fits, nil
}

// offerFor 劃位用的販售規則；本身就是同一票種同一場次時直接沿用
func (a *allocation) offerFor(ctx context.Context, kind *model.VoucherKind, performanceID int64) (*model.Offer, error) {
	if a.offer.VoucherKindID == kind.ID && a.offer.PerformanceID != nil && *a.offer.PerformanceID == performanceID {
		return a.offer, nil
	}
	key := bindKey{kindID: kind.ID, performanceID: performanceID}
	if offer, ok := a.offers[key]; ok {
		return offer, nil
	}
	offer, err := a.svc.offerRepo.FindByKindAndPerformance(ctx, a.tx, kind.ID, performanceID)
	if err != nil {
		return nil, err
	}
	a.offers[key] = offer
	return offer, nil
}

// createUnits 一般票種：綁定販售規則的場次，否則綁定票種指定場次，兩者皆無則不劃位
func (a *allocation) createUnits(ctx context.Context, kind *model.VoucherKind) error {
	target := a.offer.PerformanceID
	if target == nil {
		target = kind.UniquePerformanceID
	}

	for i := 0; i < a.req.Quantity; i++ {
		unit := model.NewUnitFromKind(kind, a.req.CustomerID, a.req.PurchaseMethod, a.req.Comment, a.req.ActorID)
		if target != nil {
			if err := a.bind(ctx, unit, kind, *target); err != nil {
				return err
			}
		}
		if err := a.create(ctx, unit); err != nil {
			return err
		}
	}
	return nil
}

// createBundles 每份套票一張母票，組成票價格為 0 並指向母票
func (a *allocation) createBundles(ctx context.Context, kind *model.VoucherKind) error {
	for i := 0; i < a.req.Quantity; i++ {
		parent := model.NewUnitFromKind(kind, a.req.CustomerID, a.req.PurchaseMethod, a.req.Comment, a.req.ActorID)
		if err := a.create(ctx, parent); err != nil {
			return err
		}

		for _, component := range kind.Components {
			if component.Kind == nil {
				return fmt.Errorf("%w: bundle component %d not loaded", apperrors.ErrInvalidOffer, component.ComponentKindID)
			}
			for j := 0; j < component.Quantity; j++ {
				unit := model.NewUnitFromKind(component.Kind, a.req.CustomerID, a.req.PurchaseMethod, a.req.Comment, a.req.ActorID)
				unit.Price = decimal.Zero
				parentID := parent.ID
				unit.BundleID = &parentID

				if component.Kind.IsMonogamous() {
					if err := a.bind(ctx, unit, component.Kind, *component.Kind.UniquePerformanceID); err != nil {
						return err
					}
				}
				if err := a.create(ctx, unit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// bind 逐張劃位；任何一張失敗整筆交易回滾
func (a *allocation) bind(ctx context.Context, unit *model.InventoryUnit, kind *model.VoucherKind, performanceID int64) error {
	offer, err := a.offerFor(ctx, kind, performanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidOffer) {
			return &apperrors.CapacityExceededError{
				Requested: a.req.Quantity,
				Cause:     fmt.Errorf("%w: %s has no offer for performance %d", apperrors.ErrInvalidRedemption, kind.Name, performanceID),
			}
		}
		return err
	}

	adjusted, err := a.svc.resolver.ResolveForReservation(ctx, a.tx, offer)
	if err != nil {
		return err
	}
	if !adjusted.Available() {
		// 此時的剩餘數已扣掉本交易建立的票，回報建立前的份數
		return &apperrors.CapacityExceededError{
			Requested: a.req.Quantity,
			Remaining: max(a.remaining, 0),
			Cause:     fmt.Errorf("%w: %s", apperrors.ErrInvalidRedemption, adjusted.Explanation()),
		}
	}

	unit.Bind(performanceID)
	a.counts[performanceID]++
	return nil
}

func (a *allocation) create(ctx context.Context, unit *model.InventoryUnit) error {
	if err := a.svc.unitRepo.Create(ctx, a.tx, unit); err != nil {
		return err
	}
	a.units = append(a.units, unit)
	return nil
}

// performancesTouchedBy 配票可能劃位的所有場次 (遞增、不重複)
func performancesTouchedBy(offer *model.Offer, kind *model.VoucherKind) []int64 {
	ids := make([]int64, 0, 1+len(kind.Components))
	if offer.PerformanceID != nil {
		ids = append(ids, *offer.PerformanceID)
	}
	if kind.UniquePerformanceID != nil {
		ids = append(ids, *kind.UniquePerformanceID)
	}
	for _, c := range kind.Components {
		if c.Kind != nil && c.Kind.UniquePerformanceID != nil {
			ids = append(ids, *c.Kind.UniquePerformanceID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func sortedKeys(m map[int64]int) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
