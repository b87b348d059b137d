package service_test

import (
	"context"
	"errors"
	"go-gin-ticket-inventory/config"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/testutil"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 等待上限短，讓被擋住的呼叫很快回傳 ErrContended
func shortWait() config.LockConfig {
	return config.LockConfig{
		Wait:          100 * time.Millisecond,
		TTL:           30 * time.Second,
		RetryInterval: 2 * time.Millisecond,
	}
}

// cappedFlexBundle 上限 maxSales 份、組成票都不指定場次的套票
func cappedFlexBundle(env *testEnv, maxSales int) (*model.VoucherKind, *model.Offer) {
	flex := env.f.Kind("Flex", "25.00")
	bundle := env.f.Kind("Flex Pack", "45.00", testutil.WithComponents(
		model.BundleComponent{ComponentKindID: flex.ID, Quantity: 2},
	))
	return bundle, env.f.Offer(bundle, nil, testutil.WithMaxSales(maxSales))
}

func TestLocking_AcquiredIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocate locks the offer performance", func(t *testing.T) {
		env := setupEnv(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf)

		_, err := env.allocation.Allocate(ctx, env.purchase(offer, 0, 2))
		require.NoError(t, err)

		assert.Equal(t, []int64{perf.ID}, env.locks.lastPerformances(t))
		assert.Empty(t, env.locks.offerLocks())
	})

	t.Run("Transfer locks source and destination in ascending order", func(t *testing.T) {
		env := setupEnv(t)
		low := env.f.Performance(10)
		high := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		units := env.f.Units(kind, high, 0, 2)

		require.NoError(t, env.transfer.Transfer(ctx, idsOf(units), low.ID, 1))

		assert.Equal(t, []int64{low.ID, high.ID}, env.locks.lastPerformances(t))
	})

	t.Run("Capped bundle without seated components locks the offer", func(t *testing.T) {
		env := setupEnv(t)
		_, offer := cappedFlexBundle(env, 5)

		_, err := env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
		require.NoError(t, err)

		assert.Equal(t, []int64{offer.ID}, env.locks.offerLocks())
		assert.Empty(t, env.locks.lastPerformances(t))
	})

	t.Run("Uncapped bundle does not lock the offer", func(t *testing.T) {
		env := setupEnv(t)
		flex := env.f.Kind("Flex", "25.00")
		bundle := env.f.Kind("Flex Pack", "45.00", testutil.WithComponents(
			model.BundleComponent{ComponentKindID: flex.ID, Quantity: 2},
		))
		offer := env.f.Offer(bundle, nil)

		_, err := env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
		require.NoError(t, err)

		assert.Empty(t, env.locks.offerLocks())
	})
}

// 其他呼叫端持有鎖時服務必須等待，逾時則不寫入任何資料
func TestLocking_Contention(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocate blocked by a held performance lock", func(t *testing.T) {
		env := setupEnvWithLock(t, shortWait())
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf)

		held, err := env.locker.Acquire(ctx, []int64{perf.ID})
		require.NoError(t, err)
		defer held.Release(ctx)

		_, err = env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
		assert.ErrorIs(t, err, apperrors.ErrContended)

		n, err := env.ledger.UnitsSoldOfKind(ctx, env.db, &perf.ID, kind.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 10, env.remaining(t, perf))
	})

	t.Run("Transfer blocked by a held destination lock", func(t *testing.T) {
		env := setupEnvWithLock(t, shortWait())
		source := env.f.Performance(10)
		dest := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		units := env.f.Units(kind, source, 0, 1)

		held, err := env.locker.Acquire(ctx, []int64{dest.ID})
		require.NoError(t, err)
		defer held.Release(ctx)

		err = env.transfer.Transfer(ctx, idsOf(units), dest.ID, 1)
		assert.ErrorIs(t, err, apperrors.ErrContended)
		assert.True(t, env.unit(t, units[0].ID).IsBoundTo(source.ID))
	})

	t.Run("Capped bundle blocked by a held offer lock", func(t *testing.T) {
		env := setupEnvWithLock(t, shortWait())
		bundle, offer := cappedFlexBundle(env, 5)

		held, err := env.locker.AcquireOffer(ctx, offer.ID)
		require.NoError(t, err)

		_, err = env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
		assert.ErrorIs(t, err, apperrors.ErrContended)
		n, err := env.ledger.UnitsSoldOfKind(ctx, env.db, nil, bundle.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		held.Release(ctx)
		_, err = env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
		require.NoError(t, err)
	})
}

// waitsForLease 持有鎖期間 call 不得完成，釋放後才完成
func waitsForLease(t *testing.T, release func(), call func() error) {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- call() }()

	select {
	case err := <-done:
		t.Fatalf("call finished while the lock was held: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	release()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("call did not finish after the lock was released")
	}
}

func TestLocking_Serializes(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocate waits for the performance lock", func(t *testing.T) {
		env := setupEnv(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf)

		held, err := env.locker.Acquire(ctx, []int64{perf.ID})
		require.NoError(t, err)

		waitsForLease(t, func() { held.Release(ctx) }, func() error {
			_, err := env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
			return err
		})
		assert.Equal(t, 9, env.remaining(t, perf))
	})

	t.Run("Capped bundle waits for the offer lock", func(t *testing.T) {
		env := setupEnv(t)
		bundle, offer := cappedFlexBundle(env, 5)

		held, err := env.locker.AcquireOffer(ctx, offer.ID)
		require.NoError(t, err)

		waitsForLease(t, func() { held.Release(ctx) }, func() error {
			_, err := env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
			return err
		})
		n, err := env.ledger.UnitsSoldOfKind(ctx, env.db, nil, bundle.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Capped bundle purchases never exceed the cap", func(t *testing.T) {
		env := setupEnv(t)
		bundle, offer := cappedFlexBundle(env, 1)

		results := make([]error, 4)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = env.allocation.Allocate(ctx, env.purchase(offer, 0, 1))
			}(i)
		}
		wg.Wait()

		var success int
		for _, err := range results {
			switch {
			case err == nil:
				success++
			case errors.Is(err, apperrors.ErrCapacityExceeded):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, success)
		n, err := env.ledger.UnitsSoldOfKind(ctx, env.db, nil, bundle.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
