package service_test

import (
	"context"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/testutil"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxOfficeService_Quote(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	perf := env.f.Performance(10)
	general := env.f.Kind("General", "25.00")
	members := env.f.Kind("Members", "15.00", testutil.WithAudience(model.AudienceSubscribers))
	preview := env.f.Kind("Preview", "10.00")
	env.f.Offer(general, perf)
	env.f.Offer(members, perf)
	env.f.Offer(preview, perf, testutil.WithPromoCode("PREVIEW"))
	env.f.Units(general, perf, 0, 4)

	subscriber := env.f.Customer("sub@example.com", true)

	t.Run("Success - generic customer sees public offers", func(t *testing.T) {
		offers, err := env.boxOffice.Quote(ctx, perf.ID, model.GenericCustomerID, "")
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, "General", offers[0].Name())
		assert.Equal(t, model.Bounded(6), offers[0].Quantity())
	})

	t.Run("Success - subscriber with promo code", func(t *testing.T) {
		offers, err := env.boxOffice.Quote(ctx, perf.ID, subscriber.ID, "preview")
		require.NoError(t, err)
		require.Len(t, offers, 3)
	})

	t.Run("Failed - unknown performance", func(t *testing.T) {
		_, err := env.boxOffice.Quote(ctx, 99999, 0, "")
		assert.ErrorIs(t, err, apperrors.ErrPerformanceNotFound)
	})

	t.Run("Failed - unknown customer", func(t *testing.T) {
		_, err := env.boxOffice.Quote(ctx, perf.ID, 99999, "")
		assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	})
}

func TestBoxOfficeService_QuotePurchaseQuote(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	perf := env.f.Performance(10)
	kind := env.f.Kind("Matinee", "18.00")
	offer := env.f.Offer(kind, perf, testutil.WithMaxSales(5))

	// 票種上限 5 小於場次容量 10
	offers, err := env.boxOffice.Quote(ctx, perf.ID, model.GenericCustomerID, "")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, model.Bounded(5), offers[0].Quantity())
	assert.Equal(t, "5 of these tickets remaining", offers[0].Explanation())

	resp, err := env.boxOffice.Purchase(ctx, env.purchase(offer, 0, 3))
	require.NoError(t, err)
	assert.Len(t, resp.UnitIDs, 3)

	sold, err := env.ledger.UnitsSoldOfKind(ctx, env.db, &perf.ID, kind.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sold)

	offers, err = env.boxOffice.Quote(ctx, perf.ID, model.GenericCustomerID, "")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, model.Bounded(2), offers[0].Quantity())
	assert.Equal(t, "2 of these tickets remaining", offers[0].Explanation())
	assert.Equal(t, 7, env.remaining(t, perf))
}

func TestBoxOfficeService_Bundles(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	flex := env.f.Kind("Flex", "25.00")
	season := env.f.Kind("Season Pass", "90.00", testutil.WithComponents(
		model.BundleComponent{ComponentKindID: flex.ID, Quantity: 3},
	))
	insider := env.f.Kind("Insider Pass", "70.00",
		testutil.WithComponents(model.BundleComponent{ComponentKindID: flex.ID, Quantity: 2}),
		testutil.WithAudience(model.AudienceBoxOffice),
	)
	env.f.Offer(season, nil, testutil.WithMaxSales(100))
	env.f.Offer(insider, nil)

	offers, err := env.boxOffice.Bundles(ctx, model.GenericCustomerID, "")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Season Pass", offers[0].Name())
	assert.Equal(t, model.Bounded(100), offers[0].Quantity())
	_, bound := offers[0].PerformanceID()
	assert.False(t, bound)
}

func TestBoxOfficeService_Purchase(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	perf := env.f.Performance(10)
	kind := env.f.Kind("General", "25.50")
	offer := env.f.Offer(kind, perf)

	resp, err := env.boxOffice.Purchase(ctx, env.purchase(offer, 0, 2))
	require.NoError(t, err)
	assert.Len(t, resp.UnitIDs, 2)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("51.00")))

	_, err = env.boxOffice.Purchase(ctx, env.purchase(offer, 0, 20))
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
}

func TestBoxOfficeService_Modify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - destroy", func(t *testing.T) {
		env := setupEnv(t)
		perf := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		units := env.f.Units(kind, perf, 0, 2)

		outcome, err := env.boxOffice.Modify(ctx, model.ModifyRequest{
			UnitIDs: idsOf(units),
			Action:  model.ModifyActionDestroy,
		})
		require.NoError(t, err)
		assert.Equal(t, model.ModifyActionDestroy, outcome.Action)
		assert.Equal(t, 2, outcome.Affected)
	})

	t.Run("Success - transfer", func(t *testing.T) {
		env := setupEnv(t)
		source := env.f.Performance(10)
		dest := env.f.Performance(10)
		kind := env.f.Kind("General", "25.00")
		units := env.f.Units(kind, source, 0, 2)

		outcome, err := env.boxOffice.Modify(ctx, model.ModifyRequest{
			UnitIDs:                  idsOf(units),
			Action:                   model.ModifyActionTransfer,
			DestinationPerformanceID: &dest.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.Affected)
		assert.Equal(t, 8, env.remaining(t, dest))
	})

	t.Run("Failed - transfer without destination", func(t *testing.T) {
		env := setupEnv(t)
		_, err := env.boxOffice.Modify(ctx, model.ModifyRequest{
			UnitIDs: []int64{1},
			Action:  model.ModifyActionTransfer,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - unknown action", func(t *testing.T) {
		env := setupEnv(t)
		_, err := env.boxOffice.Modify(ctx, model.ModifyRequest{
			UnitIDs: []int64{1},
			Action:  "refund",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestBoxOfficeService_Stats(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	perf := env.f.Performance(8)
	kind := env.f.Kind("General", "25.00")
	env.f.Units(kind, perf, 0, 2)

	stats, err := env.boxOffice.Stats(ctx, perf.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sold)
	assert.Equal(t, 6, stats.Remaining)
	assert.Equal(t, 25.0, stats.PercentSold)

	_, err = env.boxOffice.Stats(ctx, 99999)
	assert.ErrorIs(t, err, apperrors.ErrPerformanceNotFound)
}

func TestBoxOfficeService_AddCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := setupEnv(t)
		perf := env.f.Performance(4)
		kind := env.f.Kind("General", "25.00")
		env.f.Units(kind, perf, 0, 4)

		stats, err := env.boxOffice.AddCapacity(ctx, perf.ID, 6)
		require.NoError(t, err)
		assert.Equal(t, 10, stats.Capacity)
		assert.Equal(t, 4, stats.Sold)
		assert.Equal(t, 6, stats.Remaining)

		// 新增的座位立即可售
		offer := env.f.Offer(kind, perf)
		_, err = env.boxOffice.Purchase(ctx, env.purchase(offer, 0, 6))
		require.NoError(t, err)
	})

	t.Run("Failed - non-positive seats", func(t *testing.T) {
		env := setupEnv(t)
		perf := env.f.Performance(4)

		_, err := env.boxOffice.AddCapacity(ctx, perf.ID, 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, 4, env.remaining(t, perf))
	})

	t.Run("Failed - unknown performance", func(t *testing.T) {
		env := setupEnv(t)
		_, err := env.boxOffice.AddCapacity(ctx, 99999, 5)
		assert.ErrorIs(t, err, apperrors.ErrPerformanceNotFound)
	})
}
