package repository_test

import (
	"context"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/repository"
	"go-gin-ticket-inventory/internal/testutil"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestOfferRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupDB(t)
	now := time.Now().UTC()
	f := testutil.NewFixtures(t, db, now)
	repo := repository.NewOfferRepository()

	perf := f.Performance(100)
	kind := f.Kind("General", "25.00")

	t.Run("Success", func(t *testing.T) {
		offer, err := repo.Create(ctx, db, &model.Offer{
			VoucherKindID: kind.ID,
			PerformanceID: &perf.ID,
			StartSales:    now,
			EndSales:      now.Add(time.Hour),
		}, kind)

		require.NoError(t, err)
		assert.NotZero(t, offer.ID)
	})

	t.Run("Success - bundle offers drop the performance", func(t *testing.T) {
		bundle := f.Kind("Season Pass", "100.00", testutil.WithComponents())

		offer, err := repo.Create(ctx, db, &model.Offer{
			VoucherKindID: bundle.ID,
			PerformanceID: &perf.ID,
			StartSales:    now,
			EndSales:      now.Add(time.Hour),
		}, bundle)

		require.NoError(t, err)
		assert.Nil(t, offer.PerformanceID)
	})

	t.Run("Failed - sales end after kind expires", func(t *testing.T) {
		_, err := repo.Create(ctx, db, &model.Offer{
			VoucherKindID: kind.ID,
			PerformanceID: &perf.ID,
			StartSales:    now,
			EndSales:      kind.ValidUntil.Add(time.Hour),
		}, kind)

		assert.ErrorIs(t, err, apperrors.ErrInvalidOffer)
	})

	t.Run("Failed - missing dates", func(t *testing.T) {
		_, err := repo.Create(ctx, db, &model.Offer{
			VoucherKindID: kind.ID,
			PerformanceID: &perf.ID,
		}, kind)

		assert.ErrorIs(t, err, apperrors.ErrInvalidOffer)
	})
}

func TestOfferRepository_Find(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupDB(t)
	f := testutil.NewFixtures(t, db, time.Now())
	repo := repository.NewOfferRepository()

	perfA := f.Performance(100)
	perfB := f.Performance(100)
	general := f.Kind("General", "25.00")
	student := f.Kind("Student", "10.00")
	bundle := f.Kind("Season Pass", "100.00", testutil.WithComponents())

	generalA := f.Offer(general, perfA, testutil.WithPromoCode("SPRING"))
	studentA := f.Offer(student, perfA)
	f.Offer(general, perfB)
	bundleOffer := f.Offer(bundle, nil)

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, db, generalA.ID)
		require.NoError(t, err)
		assert.Equal(t, "SPRING", found.PromoCode)

		_, err = repo.FindByID(ctx, db, 99999)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOffer)
	})

	t.Run("FindByKindAndPerformance", func(t *testing.T) {
		found, err := repo.FindByKindAndPerformance(ctx, db, student.ID, perfA.ID)
		require.NoError(t, err)
		assert.Equal(t, studentA.ID, found.ID)

		_, err = repo.FindByKindAndPerformance(ctx, db, student.ID, perfB.ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOffer)
	})

	t.Run("ListByPerformance", func(t *testing.T) {
		offers, err := repo.ListByPerformance(ctx, db, perfA.ID)
		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Equal(t, generalA.ID, offers[0].ID)
		assert.Equal(t, studentA.ID, offers[1].ID)
	})

	t.Run("ListBundleOffers", func(t *testing.T) {
		offers, err := repo.ListBundleOffers(ctx, db)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, bundleOffer.ID, offers[0].ID)
	})

	t.Run("LockByID", func(t *testing.T) {
		err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			locked, err := repo.LockByID(ctx, tx, bundleOffer.ID)
			require.NoError(t, err)
			assert.Equal(t, bundle.ID, locked.VoucherKindID)

			_, err = repo.LockByID(ctx, tx, 99999)
			assert.ErrorIs(t, err, apperrors.ErrInvalidOffer)
			return nil
		})
		require.NoError(t, err)
	})
}
