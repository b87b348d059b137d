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
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

type TransferService interface {
	// Transfer 整批改劃到目的場次；容量不足時整批不動並回報可容納張數
	Transfer(ctx context.Context, unitIDs []int64, destinationID int64, actorID int64) error
	// DestroyMultiple 銷毀並釋出座位；已銷毀的票略過
	DestroyMultiple(ctx context.Context, unitIDs []int64, actorID int64) (int, error)
	// TransferToCustomer 受讓人不存在時回傳 false，原持有人不變
	TransferToCustomer(ctx context.Context, unitID int64, customerID int64) (bool, error)
	Reserve(ctx context.Context, unitID int64, performanceID int64, actorID int64) (*model.InventoryUnit, error)
	Unreserve(ctx context.Context, unitID int64, actorID int64) (*model.InventoryUnit, error)
	CheckIn(ctx context.Context, unitIDs []int64, uncheck bool) ([]*model.InventoryUnit, error)
}

type TransferServiceImpl struct {
	db              *bun.DB
	unitRepo        repository.InventoryUnitRepository
	offerRepo       repository.OfferRepository
	kindRepo        repository.VoucherKindRepository
	customerRepo    repository.CustomerRepository
	performanceRepo repository.PerformanceRepository
	resolver        resolver.Resolver
	ledger          ledger.CapacityLedger
	locker          cache.PerformanceLocker
	audit           auditRecorder
	log             *zap.Logger
}

func NewTransferService(
	db *bun.DB,
	unitRepo repository.InventoryUnitRepository,
	offerRepo repository.OfferRepository,
	kindRepo repository.VoucherKindRepository,
	customerRepo repository.CustomerRepository,
	performanceRepo repository.PerformanceRepository,
	resolver resolver.Resolver,
	ledger ledger.CapacityLedger,
	locker cache.PerformanceLocker,
	auditQueue queue.AuditQueue,
) TransferService {
	return &TransferServiceImpl{
		db:              db,
		unitRepo:        unitRepo,
		offerRepo:       offerRepo,
		kindRepo:        kindRepo,
		customerRepo:    customerRepo,
		performanceRepo: performanceRepo,
		resolver:        resolver,
		ledger:          ledger,
		locker:          locker,
		audit:           auditRecorder{queue: auditQueue},
		log:             logger.WithComponent("transfer"),
	}
}

func (s *TransferServiceImpl) Transfer(ctx context.Context, unitIDs []int64, destinationID int64, actorID int64) error {
	if len(unitIDs) == 0 {
		return apperrors.ErrInvalidInput
	}

	units, err := s.unitRepo.FindByIDs(ctx, s.db, unitIDs)
	if err != nil {
		return err
	}
	lockIDs := append(boundPerformances(units), destinationID)

	lease, err := s.locker.Acquire(ctx, lockIDs)
	if err != nil {
		return err
	}
	defer lease.Release(context.WithoutCancel(ctx))

	var moved []*model.InventoryUnit
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		performances, err := s.performanceRepo.LockByIDs(ctx, tx, lease.PerformanceIDs())
		if err != nil {
			return err
		}
		destination := findPerformance(performances, destinationID)
		if destination == nil {
			return apperrors.ErrPerformanceNotFound
		}

		// 取得鎖之後重新讀取，確認來源場次沒有在等待期間改變
		units, err := s.unitRepo.FindByIDs(ctx, tx, unitIDs)
		if err != nil {
			return err
		}
		moving := make([]*model.InventoryUnit, 0, len(units))
		kinds := make(map[int64]*model.VoucherKind)
		for _, u := range units {
			if u.IsDeleted() {
				return fmt.Errorf("%w: unit %d was destroyed", apperrors.ErrUnitNotFound, u.ID)
			}
			if u.PerformanceID != nil && !lease.Covers(*u.PerformanceID) {
				return apperrors.ErrContended
			}
			if u.State == model.UnitStateCheckedIn {
				return fmt.Errorf("%w: unit %d is checked in", apperrors.ErrInvalidTransition, u.ID)
			}
			if u.IsBoundTo(destinationID) {
				continue
			}
			kind, ok := kinds[u.VoucherKindID]
			if !ok {
				kind, err = s.kindRepo.FindByID(ctx, tx, u.VoucherKindID)
				if err != nil {
					return err
				}
				kinds[kind.ID] = kind
			}
			// 套票母票本身不佔座位；指定場次的票種只能留在該場次
			if kind.IsBundle() {
				return fmt.Errorf("%w: unit %d is a bundle and has no seat", apperrors.ErrInvalidTransition, u.ID)
			}
			if kind.IsMonogamous() && *kind.UniquePerformanceID != destinationID {
				return fmt.Errorf("%w: %s is only valid for performance %d", apperrors.ErrInvalidRedemption, kind.Name, *kind.UniquePerformanceID)
			}
			moving = append(moving, u)
		}
		if len(moving) == 0 {
			return nil
		}

		remaining, err := s.ledger.RemainingCapacity(ctx, tx, destination)
		if err != nil {
			return err
		}
		if remaining < len(moving) {
			return &apperrors.TransferInfeasibleError{Requested: len(moving), Fits: remaining}
		}

		for _, u := range moving {
			u.Bind(destinationID)
			if err := s.unitRepo.Update(ctx, tx, u, "performance_id", "state"); err != nil {
				return err
			}
		}
		moved = moving
		return nil
	})
	if err != nil {
		s.log.Info("transfer rejected",
			zap.Int64s("unit_ids", unitIDs),
			zap.Int64("destination_id", destinationID),
			zap.Error(err),
		)
		return err
	}

	s.log.Info("transfer committed",
		zap.Int64("destination_id", destinationID),
		zap.Int("moved", len(moved)),
	)
	for holder, group := range groupByHolder(moved) {
		dest := destinationID
		s.audit.record(ctx, &model.Txn{
			Type:          model.TxnTicketTransfer,
			CustomerID:    holder,
			PerformanceID: &dest,
			UnitIDs:       joinIDs(idsOf(group)),
			Comments:      fmt.Sprintf("transferred %d units to performance %d", len(group), destinationID),
			ActorID:       actorID,
		})
	}
	return nil
}

func (s *TransferServiceImpl) DestroyMultiple(ctx context.Context, unitIDs []int64, actorID int64) (int, error) {
	if len(unitIDs) == 0 {
		return 0, apperrors.ErrInvalidInput
	}

	units, err := s.unitRepo.FindByIDs(ctx, s.db, unitIDs)
	if err != nil {
		return 0, err
	}
	// 銷毀套票時一併銷毀其組成票
	units, err = s.withBundleComponents(ctx, s.db, units)
	if err != nil {
		return 0, err
	}

	lease, err := s.locker.Acquire(ctx, boundPerformances(units))
	if err != nil {
		return 0, err
	}
	defer lease.Release(context.WithoutCancel(ctx))

	var destroyed []*model.InventoryUnit
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		units, err := s.unitRepo.FindByIDs(ctx, tx, unitIDs)
		if err != nil {
			return err
		}
		units, err = s.withBundleComponents(ctx, tx, units)
		if err != nil {
			return err
		}

		live := make([]*model.InventoryUnit, 0, len(units))
		for _, u := range units {
			if u.IsDeleted() {
				continue
			}
			if u.PerformanceID != nil && !lease.Covers(*u.PerformanceID) {
				return apperrors.ErrContended
			}
			if u.State == model.UnitStateCheckedIn {
				return fmt.Errorf("%w: unit %d is checked in", apperrors.ErrInvalidTransition, u.ID)
			}
			live = append(live, u)
		}

		n, err := s.unitRepo.SoftDelete(ctx, tx, idsOf(live), actorID, time.Now().UTC())
		if err != nil {
			return err
		}
		if n != len(live) {
			return fmt.Errorf("destroyed %d of %d units", n, len(live))
		}
		destroyed = live
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("units destroyed",
		zap.Int64s("unit_ids", unitIDs),
		zap.Int("destroyed", len(destroyed)),
		zap.Int64("actor_id", actorID),
	)
	for holder, group := range groupByHolder(destroyed) {
		s.audit.record(ctx, &model.Txn{
			Type:       model.TxnTicketDestroy,
			CustomerID: holder,
			UnitIDs:    joinIDs(idsOf(group)),
			Comments:   fmt.Sprintf("destroyed %d units", len(group)),
			ActorID:    actorID,
		})
	}
	return len(destroyed), nil
}

func (s *TransferServiceImpl) TransferToCustomer(ctx context.Context, unitID int64, customerID int64) (bool, error) {
	if customerID == model.GenericCustomerID {
		return false, nil
	}
	exists, err := s.customerRepo.Exists(ctx, s.db, customerID)
	if err != nil {
		return false, err
	}
	if !exists {
		s.log.Info("transfer to unknown customer ignored",
			zap.Int64("unit_id", unitID),
			zap.Int64("customer_id", customerID),
		)
		return false, nil
	}

	var previous int64
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		unit, err := s.unitRepo.FindByID(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if unit.IsDeleted() {
			return apperrors.ErrUnitNotFound
		}
		previous = holderOf(unit)
		cid := customerID
		unit.CustomerID = &cid
		return s.unitRepo.Update(ctx, tx, unit, "customer_id")
	})
	if err != nil {
		return false, err
	}

	s.audit.record(ctx, &model.Txn{
		Type:       model.TxnTicketGift,
		CustomerID: customerID,
		UnitIDs:    joinIDs([]int64{unitID}),
		Comments:   fmt.Sprintf("transferred from customer %d", previous),
	})
	return true, nil
}

// Reserve 已持有但未劃位的票劃位到指定場次
func (s *TransferServiceImpl) Reserve(ctx context.Context, unitID int64, performanceID int64, actorID int64) (*model.InventoryUnit, error) {
	lease, err := s.locker.Acquire(ctx, []int64{performanceID})
	if err != nil {
		return nil, err
	}
	defer lease.Release(context.WithoutCancel(ctx))

	var unit *model.InventoryUnit
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.performanceRepo.LockByIDs(ctx, tx, []int64{performanceID}); err != nil {
			return err
		}

		u, err := s.unitRepo.FindByID(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if u.IsDeleted() {
			return apperrors.ErrUnitNotFound
		}
		if u.State != model.UnitStateUnreserved || !u.State.CanTransitionTo(model.UnitStateReserved) {
			return fmt.Errorf("%w: unit %d is %s", apperrors.ErrInvalidTransition, u.ID, u.State)
		}

		kind, err := s.kindRepo.FindByID(ctx, tx, u.VoucherKindID)
		if err != nil {
			return err
		}
		if kind.IsMonogamous() && *kind.UniquePerformanceID != performanceID {
			return fmt.Errorf("%w: %s is only valid for performance %d", apperrors.ErrInvalidRedemption, kind.Name, *kind.UniquePerformanceID)
		}

		offer, err := s.offerRepo.FindByKindAndPerformance(ctx, tx, u.VoucherKindID, performanceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidOffer) {
				return fmt.Errorf("%w: %s is not valid for performance %d", apperrors.ErrInvalidRedemption, kind.Name, performanceID)
			}
			return err
		}
		adjusted, err := s.resolver.ResolveForReservation(ctx, tx, offer)
		if err != nil {
			return err
		}
		if !adjusted.Available() {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidRedemption, adjusted.Explanation())
		}

		u.Bind(performanceID)
		u.ProcessedBy = actorID
		if err := s.unitRepo.Update(ctx, tx, u, "performance_id", "state", "processed_by"); err != nil {
			return err
		}
		unit = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, &model.Txn{
		Type:          model.TxnReservationMade,
		CustomerID:    holderOf(unit),
		PerformanceID: unit.PerformanceID,
		UnitIDs:       joinIDs([]int64{unit.ID}),
		ActorID:       actorID,
	})
	return unit, nil
}

// Unreserve 取消劃位，座位釋出
func (s *TransferServiceImpl) Unreserve(ctx context.Context, unitID int64, actorID int64) (*model.InventoryUnit, error) {
	current, err := s.unitRepo.FindByID(ctx, s.db, unitID)
	if err != nil {
		return nil, err
	}
	if current.PerformanceID == nil {
		return nil, fmt.Errorf("%w: unit %d is not reserved", apperrors.ErrInvalidTransition, unitID)
	}

	lease, err := s.locker.Acquire(ctx, []int64{*current.PerformanceID})
	if err != nil {
		return nil, err
	}
	defer lease.Release(context.WithoutCancel(ctx))

	var unit *model.InventoryUnit
	var performanceID int64
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		u, err := s.unitRepo.FindByID(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if u.IsDeleted() {
			return apperrors.ErrUnitNotFound
		}
		if u.PerformanceID == nil || !lease.Covers(*u.PerformanceID) {
			return apperrors.ErrContended
		}
		if u.State != model.UnitStateReserved || !u.State.CanTransitionTo(model.UnitStateUnreserved) {
			return fmt.Errorf("%w: unit %d is %s", apperrors.ErrInvalidTransition, u.ID, u.State)
		}

		performanceID = *u.PerformanceID
		u.PerformanceID = nil
		u.State = model.UnitStateUnreserved
		u.ProcessedBy = actorID
		if err := s.unitRepo.Update(ctx, tx, u, "performance_id", "state", "processed_by"); err != nil {
			return err
		}
		unit = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, &model.Txn{
		Type:          model.TxnReservationCancel,
		CustomerID:    holderOf(unit),
		PerformanceID: &performanceID,
		UnitIDs:       joinIDs([]int64{unit.ID}),
		ActorID:       actorID,
	})
	return unit, nil
}

// CheckIn 入場報到 (uncheck 為取消報到)；不影響座位數，不需場次鎖
func (s *TransferServiceImpl) CheckIn(ctx context.Context, unitIDs []int64, uncheck bool) ([]*model.InventoryUnit, error) {
	if len(unitIDs) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	from, to, txnType := model.UnitStateReserved, model.UnitStateCheckedIn, model.TxnTicketCheckIn
	if uncheck {
		from, to, txnType = model.UnitStateCheckedIn, model.UnitStateReserved, model.TxnTicketUndoCheckIn
	}

	var units []*model.InventoryUnit
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := s.unitRepo.FindByIDs(ctx, tx, unitIDs)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, u := range found {
			if u.IsDeleted() {
				return fmt.Errorf("%w: unit %d was destroyed", apperrors.ErrUnitNotFound, u.ID)
			}
			if u.State != from || !u.State.CanTransitionTo(to) {
				return fmt.Errorf("%w: unit %d is %s", apperrors.ErrInvalidTransition, u.ID, u.State)
			}
			u.State = to
			if uncheck {
				u.CheckedInAt = nil
			} else {
				u.CheckedInAt = &now
			}
			if err := s.unitRepo.Update(ctx, tx, u, "state", "checked_in_at"); err != nil {
				return err
			}
		}
		units = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	for holder, group := range groupByHolder(units) {
		s.audit.record(ctx, &model.Txn{
			Type:          txnType,
			CustomerID:    holder,
			PerformanceID: group[0].PerformanceID,
			UnitIDs:       joinIDs(idsOf(group)),
		})
	}
	return units, nil
}

// withBundleComponents 補上母票底下尚未列入的組成票
func (s *TransferServiceImpl) withBundleComponents(ctx context.Context, db bun.IDB, units []*model.InventoryUnit) ([]*model.InventoryUnit, error) {
	seen := make(map[int64]struct{}, len(units))
	for _, u := range units {
		seen[u.ID] = struct{}{}
	}
	out := slices.Clone(units)
	for _, u := range units {
		children, err := s.unitRepo.ListByBundle(ctx, db, u.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

func boundPerformances(units []*model.InventoryUnit) []int64 {
	ids := make([]int64, 0, len(units))
	for _, u := range units {
		if u.PerformanceID != nil && !u.IsDeleted() {
			ids = append(ids, *u.PerformanceID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func findPerformance(performances []*model.Performance, id int64) *model.Performance {
	for _, p := range performances {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func groupByHolder(units []*model.InventoryUnit) map[int64][]*model.InventoryUnit {
	groups := make(map[int64][]*model.InventoryUnit)
	for _, u := range units {
		h := holderOf(u)
		groups[h] = append(groups[h], u)
	}
	return groups
}
