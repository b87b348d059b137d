package model_test

import (
	"go-gin-ticket-inventory/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOffer_AcceptsPromoCode(t *testing.T) {
	t.Run("Success - no code required", func(t *testing.T) {
		o := &model.Offer{}
		assert.False(t, o.RequiresPromoCode())
		assert.True(t, o.AcceptsPromoCode(""))
		assert.True(t, o.AcceptsPromoCode("anything"))
	})

	t.Run("Success - case insensitive, comma separated", func(t *testing.T) {
		o := &model.Offer{PromoCode: "SPRING, Friends"}
		assert.True(t, o.AcceptsPromoCode("spring"))
		assert.True(t, o.AcceptsPromoCode(" FRIENDS "))
	})

	t.Run("Failed - missing or wrong code", func(t *testing.T) {
		o := &model.Offer{PromoCode: "SPRING"}
		assert.False(t, o.AcceptsPromoCode(""))
		assert.False(t, o.AcceptsPromoCode("WINTER"))
	})
}

func TestOffer_MaxSales(t *testing.T) {
	assert.True(t, (&model.Offer{}).MaxSales().IsUnlimited())

	n := 5
	assert.Equal(t, model.Bounded(5), (&model.Offer{MaxSalesForType: &n}).MaxSales())
}

func TestOffer_Validate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pid := int64(1)
	kind := &model.VoucherKind{
		ID:         10,
		Name:       "General",
		Category:   model.CategoryRevenue,
		ValidUntil: now.Add(30 * 24 * time.Hour),
	}
	valid := func() *model.Offer {
		return &model.Offer{
			VoucherKindID: 10,
			PerformanceID: &pid,
			StartSales:    now,
			EndSales:      now.Add(24 * time.Hour),
		}
	}

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, valid().Validate(kind))
	})

	t.Run("Failed - missing dates", func(t *testing.T) {
		o := valid()
		o.EndSales = time.Time{}
		assert.Error(t, o.Validate(kind))
	})

	t.Run("Failed - start after end", func(t *testing.T) {
		o := valid()
		o.StartSales = o.EndSales.Add(time.Hour)
		assert.Error(t, o.Validate(kind))
	})

	t.Run("Failed - negative max sales", func(t *testing.T) {
		o := valid()
		n := -1
		o.MaxSalesForType = &n
		assert.Error(t, o.Validate(kind))
	})

	t.Run("Failed - sales continue past kind season", func(t *testing.T) {
		o := valid()
		o.EndSales = kind.ValidUntil.Add(time.Minute)
		assert.Error(t, o.Validate(kind))
	})

	t.Run("Failed - regular kind without performance", func(t *testing.T) {
		o := valid()
		o.PerformanceID = nil
		assert.Error(t, o.Validate(kind))
	})

	t.Run("Success - bundle without performance", func(t *testing.T) {
		bundle := *kind
		bundle.Category = model.CategoryBundle
		o := valid()
		o.PerformanceID = nil
		assert.NoError(t, o.Validate(&bundle))
	})
}
