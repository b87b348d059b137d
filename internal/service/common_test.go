package service_test

import (
	"context"
	"go-gin-ticket-inventory/config"
	"go-gin-ticket-inventory/internal/cache"
	"go-gin-ticket-inventory/internal/ledger"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/queue"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/internal/resolver"
	"go-gin-ticket-inventory/internal/service"
	"go-gin-ticket-inventory/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// testEnv 完整組裝的服務 (SQLite + miniredis + 記憶體稽核隊列)
type testEnv struct {
	db         *bun.DB
	redis      *miniredis.Miniredis
	audit      queue.AuditQueue
	unitRepo   repository.InventoryUnitRepository
	ledger     ledger.CapacityLedger
	allocation service.AllocationService
	transfer   service.TransferService
	boxOffice  service.BoxOfficeService
	f          *testutil.Fixtures
	locker     cache.PerformanceLocker // 測試直接持有的鎖，與服務共用同一個 Redis
	locks      *recordingLocker
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	return setupEnvWithLock(t, testutil.LockConfig())
}

// setupEnvWithLock lockCfg 決定服務等待場次鎖的上限
func setupEnvWithLock(t *testing.T, lockCfg config.LockConfig) *testEnv {
	t.Helper()

	db := testutil.SetupDB(t)
	client, mr := testutil.SetupRedis(t)
	now := time.Now().UTC().Truncate(time.Second)

	performanceRepo := repository.NewPerformanceRepository()
	kindRepo := repository.NewVoucherKindRepository()
	offerRepo := repository.NewOfferRepository()
	customerRepo := repository.NewCustomerRepository()
	unitRepo := repository.NewInventoryUnitRepository()

	holds := cache.NewRedisHoldCounter(client, time.Minute)
	locker := cache.NewRedisPerformanceLocker(client, lockCfg)
	locks := &recordingLocker{PerformanceLocker: locker}
	capacityLedger := ledger.NewCapacityLedger(unitRepo, holds)
	offerResolver := resolver.NewResolver(kindRepo, performanceRepo, capacityLedger, func() time.Time { return now })
	auditQueue := queue.NewAuditQueue(1000)

	allocation := service.NewAllocationService(db, offerRepo, kindRepo, customerRepo, performanceRepo, unitRepo, offerResolver, capacityLedger, locks, auditQueue)
	transfer := service.NewTransferService(db, unitRepo, offerRepo, kindRepo, customerRepo, performanceRepo, offerResolver, capacityLedger, locks, auditQueue)

	return &testEnv{
		db:         db,
		redis:      mr,
		audit:      auditQueue,
		unitRepo:   unitRepo,
		ledger:     capacityLedger,
		allocation: allocation,
		transfer:   transfer,
		boxOffice:  service.NewBoxOfficeService(db, offerRepo, customerRepo, performanceRepo, offerResolver, capacityLedger, allocation, transfer),
		f:          testutil.NewFixtures(t, db, now),
		locker:     locker,
		locks:      locks,
	}
}

// recordingLocker 記錄服務實際取得的鎖
type recordingLocker struct {
	cache.PerformanceLocker

	mu           sync.Mutex
	performances [][]int64
	offers       []int64
}

func (l *recordingLocker) Acquire(ctx context.Context, performanceIDs []int64) (*cache.Lease, error) {
	lease, err := l.PerformanceLocker.Acquire(ctx, performanceIDs)
	if err == nil {
		l.mu.Lock()
		l.performances = append(l.performances, lease.PerformanceIDs())
		l.mu.Unlock()
	}
	return lease, err
}

func (l *recordingLocker) AcquireOffer(ctx context.Context, offerID int64) (*cache.Lease, error) {
	lease, err := l.PerformanceLocker.AcquireOffer(ctx, offerID)
	if err == nil {
		l.mu.Lock()
		l.offers = append(l.offers, offerID)
		l.mu.Unlock()
	}
	return lease, err
}

// lastPerformances 最近一次取得的場次鎖
func (l *recordingLocker) lastPerformances(t *testing.T) []int64 {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.performances, "no performance locks acquired")
	return l.performances[len(l.performances)-1]
}

func (l *recordingLocker) offerLocks() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.offers...)
}

func (e *testEnv) purchase(offer *model.Offer, customerID int64, quantity int) model.AllocationRequest {
	return model.AllocationRequest{
		OfferID:        offer.ID,
		CustomerID:     customerID,
		Quantity:       quantity,
		PurchaseMethod: model.PurchaseMethodCredit,
	}
}

func (e *testEnv) remaining(t *testing.T, performance *model.Performance) int {
	t.Helper()
	n, err := e.ledger.RemainingCapacity(context.Background(), e.db, performance)
	require.NoError(t, err)
	return n
}

func (e *testEnv) unit(t *testing.T, id int64) *model.InventoryUnit {
	t.Helper()
	u, err := e.unitRepo.FindByID(context.Background(), e.db, id)
	require.NoError(t, err)
	return u
}

// publishedTxns 取出目前隊列中所有稽核紀錄
func (e *testEnv) publishedTxns(t *testing.T) []*model.Txn {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := e.audit.SubscribeTxns(ctx)
	require.NoError(t, err)

	var txns []*model.Txn
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return txns
			}
			txns = append(txns, msg.Data)
			msg.Ack()
		case <-time.After(50 * time.Millisecond):
			return txns
		}
	}
}

func txnTypes(txns []*model.Txn) []model.TxnType {
	types := make([]model.TxnType, len(txns))
	for i, txn := range txns {
		types[i] = txn.Type
	}
	return types
}
