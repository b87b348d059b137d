package service

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/ledger"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/internal/resolver"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// BoxOfficeService 對外 (HTTP) 的售票窗口操作
type BoxOfficeService interface {
	// 查詢場次可售票種 (不取鎖，數量可能已過時)
	Quote(ctx context.Context, performanceID int64, customerID int64, promoCode string) ([]model.AdjustedOffer, error)
	Bundles(ctx context.Context, customerID int64, promoCode string) ([]model.AdjustedOffer, error)
	Purchase(ctx context.Context, req model.AllocationRequest) (*model.PurchaseResponse, error)
	Modify(ctx context.Context, req model.ModifyRequest) (*model.ModifyOutcome, error)
	CheckIn(ctx context.Context, req model.CheckInRequest) ([]*model.InventoryUnit, error)
	Stats(ctx context.Context, performanceID int64) (*model.PerformanceStats, error)
	// AddCapacity 加開座位；容量只增不減
	AddCapacity(ctx context.Context, performanceID int64, seats int) (*model.PerformanceStats, error)
	TransferToCustomer(ctx context.Context, unitID int64, customerID int64) (bool, error)
	Reserve(ctx context.Context, unitID int64, performanceID int64, actorID int64) (*model.InventoryUnit, error)
	Unreserve(ctx context.Context, unitID int64, actorID int64) (*model.InventoryUnit, error)
}

type BoxOfficeServiceImpl struct {
	db              *bun.DB
	offerRepo       repository.OfferRepository
	customerRepo    repository.CustomerRepository
	performanceRepo repository.PerformanceRepository
	resolver        resolver.Resolver
	ledger          ledger.CapacityLedger
	allocation      AllocationService
	transfer        TransferService
}

func NewBoxOfficeService(
	db *bun.DB,
	offerRepo repository.OfferRepository,
	customerRepo repository.CustomerRepository,
	performanceRepo repository.PerformanceRepository,
	resolver resolver.Resolver,
	ledger ledger.CapacityLedger,
	allocation AllocationService,
	transfer TransferService,
) BoxOfficeService {
	return &BoxOfficeServiceImpl{
		db:              db,
		offerRepo:       offerRepo,
		customerRepo:    customerRepo,
		performanceRepo: performanceRepo,
		resolver:        resolver,
		ledger:          ledger,
		allocation:      allocation,
		transfer:        transfer,
	}
}

// Quote 只回傳顧客看得到的票種；看不到的不透露存在
func (s *BoxOfficeServiceImpl) Quote(ctx context.Context, performanceID int64, customerID int64, promoCode string) ([]model.AdjustedOffer, error) {
	if _, err := s.performanceRepo.FindByID(ctx, s.db, performanceID); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offerRepo.ListByPerformance(ctx, s.db, performanceID)
	if err != nil {
		return nil, err
	}
	return s.resolveVisible(ctx, offers, customer, promoCode)
}

func (s *BoxOfficeServiceImpl) Bundles(ctx context.Context, customerID int64, promoCode string) ([]model.AdjustedOffer, error) {
	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offerRepo.ListBundleOffers(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return s.resolveVisible(ctx, offers, customer, promoCode)
}

func (s *BoxOfficeServiceImpl) resolveVisible(ctx context.Context, offers []*model.Offer, customer *model.Customer, promoCode string) ([]model.AdjustedOffer, error) {
	result := make([]model.AdjustedOffer, 0, len(offers))
	for _, o := range offers {
		adjusted, err := s.resolver.Resolve(ctx, s.db, o, customer, promoCode)
		if err != nil {
			return nil, err
		}
		if adjusted.Visible() {
			result = append(result, adjusted)
		}
	}
	return result, nil
}

func (s *BoxOfficeServiceImpl) Purchase(ctx context.Context, req model.AllocationRequest) (*model.PurchaseResponse, error) {
	units, err := s.allocation.Allocate(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &model.PurchaseResponse{
		UnitIDs:    idsOf(units),
		TotalPrice: decimal.Zero,
	}
	for _, u := range units {
		resp.TotalPrice = resp.TotalPrice.Add(u.Price)
	}
	return resp, nil
}

func (s *BoxOfficeServiceImpl) Modify(ctx context.Context, req model.ModifyRequest) (*model.ModifyOutcome, error) {
	switch req.Action {
	case model.ModifyActionDestroy:
		n, err := s.transfer.DestroyMultiple(ctx, req.UnitIDs, req.ActorID)
		if err != nil {
			return nil, err
		}
		return &model.ModifyOutcome{Action: req.Action, Affected: n}, nil
	case model.ModifyActionTransfer:
		if req.DestinationPerformanceID == nil {
			return nil, fmt.Errorf("%w: destination performance is required", apperrors.ErrInvalidInput)
		}
		if err := s.transfer.Transfer(ctx, req.UnitIDs, *req.DestinationPerformanceID, req.ActorID); err != nil {
			return nil, err
		}
		return &model.ModifyOutcome{Action: req.Action, Affected: len(req.UnitIDs)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", apperrors.ErrInvalidInput, req.Action)
	}
}

func (s *BoxOfficeServiceImpl) CheckIn(ctx context.Context, req model.CheckInRequest) ([]*model.InventoryUnit, error) {
	return s.transfer.CheckIn(ctx, req.UnitIDs, req.Uncheck)
}

func (s *BoxOfficeServiceImpl) Stats(ctx context.Context, performanceID int64) (*model.PerformanceStats, error) {
	performance, err := s.performanceRepo.FindByID(ctx, s.db, performanceID)
	if err != nil {
		return nil, err
	}
	return s.ledger.Stats(ctx, s.db, performance)
}

func (s *BoxOfficeServiceImpl) AddCapacity(ctx context.Context, performanceID int64, seats int) (*model.PerformanceStats, error) {
	var performance *model.Performance
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.performanceRepo.IncreaseCapacity(ctx, tx, performanceID, seats); err != nil {
			return err
		}
		var err error
		performance, err = s.performanceRepo.FindByID(ctx, tx, performanceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.ledger.Stats(ctx, s.db, performance)
}

func (s *BoxOfficeServiceImpl) TransferToCustomer(ctx context.Context, unitID int64, customerID int64) (bool, error) {
	return s.transfer.TransferToCustomer(ctx, unitID, customerID)
}

func (s *BoxOfficeServiceImpl) Reserve(ctx context.Context, unitID int64, performanceID int64, actorID int64) (*model.InventoryUnit, error) {
	return s.transfer.Reserve(ctx, unitID, performanceID, actorID)
}

func (s *BoxOfficeServiceImpl) Unreserve(ctx context.Context, unitID int64, actorID int64) (*model.InventoryUnit, error) {
	return s.transfer.Unreserve(ctx, unitID, actorID)
}
