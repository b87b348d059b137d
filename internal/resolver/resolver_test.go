package resolver_test

import (
	"context"
	"go-gin-ticket-inventory/internal/cache"
	"go-gin-ticket-inventory/internal/ledger"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/internal/resolver"
	"go-gin-ticket-inventory/internal/testutil"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type resolverEnv struct {
	db       *bun.DB
	ledger   ledger.CapacityLedger
	resolver resolver.Resolver
	f        *testutil.Fixtures
}

func setupResolver(t *testing.T) *resolverEnv {
	db := testutil.SetupDB(t)
	client, _ := testutil.SetupRedis(t)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	l := ledger.NewCapacityLedger(repository.NewInventoryUnitRepository(), cache.NewRedisHoldCounter(client, time.Minute))
	r := resolver.NewResolver(
		repository.NewVoucherKindRepository(),
		repository.NewPerformanceRepository(),
		l,
		func() time.Time { return now },
	)
	return &resolverEnv{
		db:       db,
		ledger:   l,
		resolver: r,
		f:        testutil.NewFixtures(t, db, now),
	}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - remaining seats", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf)
		env.f.Units(kind, perf, 0, 5)

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)

		assert.True(t, got.Visible())
		assert.Equal(t, model.Bounded(5), got.Quantity())
		assert.Equal(t, "5 of these tickets remaining", got.Explanation())
		assert.Equal(t, "General", got.Name())
		assert.True(t, got.Price().Equal(kind.Price))
	})

	t.Run("Success - holds reduce remaining", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf)
		env.f.Units(kind, perf, 0, 5)
		require.NoError(t, env.ledger.Reserve(ctx, perf.ID, 2))

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)

		assert.Equal(t, model.Bounded(3), got.Quantity())
	})

	t.Run("Success - per-type cap counts only this performance", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(100)
		other := env.f.Performance(100)
		student := env.f.Kind("Student", "10.00")
		offer := env.f.Offer(student, perf, testutil.WithMaxSales(4))
		env.f.Units(student, perf, 0, 3)
		env.f.Units(student, other, 0, 10)

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)

		assert.Equal(t, model.Bounded(1), got.Quantity())
	})

	t.Run("Blocked - sold out stays visible", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(2)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf)
		env.f.Units(kind, perf, 0, 2)

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)

		assert.True(t, got.Visible())
		assert.False(t, got.Available())
		assert.Equal(t, "Event is sold out", got.Explanation())
	})

	t.Run("Blocked - promo code required", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("Preview", "15.00")
		offer := env.f.Offer(kind, perf, testutil.WithPromoCode("PREVIEW"))

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)
		assert.False(t, got.Visible())
		assert.Equal(t, "Promo code required", got.Explanation())

		got, err = env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "preview")
		require.NoError(t, err)
		assert.True(t, got.Visible())
		assert.True(t, got.Available())
	})

	t.Run("Blocked - performance missing", func(t *testing.T) {
		env := setupResolver(t)
		kind := env.f.Kind("General", "25.00")
		missing := int64(999)
		offer := &model.Offer{
			ID:            1,
			VoucherKindID: kind.ID,
			PerformanceID: &missing,
			StartSales:    env.f.Now.Add(-time.Hour),
			EndSales:      env.f.Now.Add(time.Hour),
		}

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)
		assert.False(t, got.Visible())
		assert.Equal(t, "Offer is not associated with a performance", got.Explanation())
	})

	t.Run("Success - bundle without cap is unlimited", func(t *testing.T) {
		env := setupResolver(t)
		bundle := env.f.Kind("Season Pass", "120.00", testutil.WithComponents())
		offer := env.f.Offer(bundle, nil)

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)
		assert.True(t, got.Visible())
		assert.True(t, got.Quantity().IsUnlimited())
		assert.Equal(t, "No performance-specific limit applies", got.Explanation())
	})

	t.Run("Success - bundle cap counts every unit of the kind", func(t *testing.T) {
		env := setupResolver(t)
		bundle := env.f.Kind("Season Pass", "120.00", testutil.WithComponents())
		offer := env.f.Offer(bundle, nil, testutil.WithMaxSales(5))
		env.f.Units(bundle, nil, 0, 2)

		got, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		require.NoError(t, err)
		assert.Equal(t, model.Bounded(3), got.Quantity())
	})

	t.Run("Failed - unknown voucher kind", func(t *testing.T) {
		env := setupResolver(t)
		offer := &model.Offer{ID: 1, VoucherKindID: 12345}

		_, err := env.resolver.Resolve(ctx, env.db, offer, model.GenericCustomer(), "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOffer)
	})
}

func TestResolver_ResolveForReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - before sales open", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf, testutil.WithSalesWindow(env.f.Now.Add(time.Hour), env.f.Now.Add(48*time.Hour)))

		got, err := env.resolver.ResolveForReservation(ctx, env.db, offer)
		require.NoError(t, err)
		assert.True(t, got.Available())
	})

	t.Run("Blocked - deadline passed", func(t *testing.T) {
		env := setupResolver(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		offer := env.f.Offer(kind, perf, testutil.WithSalesWindow(env.f.Now.Add(-48*time.Hour), env.f.Now.Add(-time.Hour)))

		got, err := env.resolver.ResolveForReservation(ctx, env.db, offer)
		require.NoError(t, err)
		assert.False(t, got.Available())
		assert.Equal(t, "Advance reservations for this performance are closed", got.Explanation())
	})
}

func TestResolver_Now(t *testing.T) {
	r := resolver.NewResolver(nil, nil, nil, nil)
	assert.WithinDuration(t, time.Now(), r.Now(), time.Second)
}
