package testutil

import (
	"context"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/repository"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Fixtures 建立測試資料的捷徑；任何錯誤直接讓測試失敗
type Fixtures struct {
	t   testing.TB
	db  bun.IDB
	Now time.Time
}

func NewFixtures(t testing.TB, db bun.IDB, now time.Time) *Fixtures {
	return &Fixtures{t: t, db: db, Now: now}
}

func (f *Fixtures) Performance(capacity int) *model.Performance {
	f.t.Helper()
	p, err := repository.NewPerformanceRepository().Create(context.Background(), f.db, &model.Performance{
		Name:            "Performance",
		Capacity:        capacity,
		StartsAt:        f.Now.Add(7 * 24 * time.Hour),
		AdvanceSalesEnd: f.Now.Add(7*24*time.Hour - 2*time.Hour),
	})
	if err != nil {
		f.t.Fatalf("failed to create performance: %v", err)
	}
	return p
}

// Kind 一般售票票種；opts 可調整欄位
func (f *Fixtures) Kind(name string, price string, opts ...func(*model.VoucherKind)) *model.VoucherKind {
	f.t.Helper()
	k := &model.VoucherKind{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Category:   model.CategoryRevenue,
		Audience:   model.AudienceAnyone,
		ValidFrom:  f.Now.Add(-365 * 24 * time.Hour),
		ValidUntil: f.Now.Add(365 * 24 * time.Hour),
	}
	for _, opt := range opts {
		opt(k)
	}
	k, err := repository.NewVoucherKindRepository().Create(context.Background(), f.db, k)
	if err != nil {
		f.t.Fatalf("failed to create voucher kind: %v", err)
	}
	return k
}

// Offer 預設販售區間涵蓋 Now；opts 可調整欄位
func (f *Fixtures) Offer(kind *model.VoucherKind, performance *model.Performance, opts ...func(*model.Offer)) *model.Offer {
	f.t.Helper()
	o := &model.Offer{
		VoucherKindID: kind.ID,
		StartSales:    f.Now.Add(-24 * time.Hour),
		EndSales:      f.Now.Add(6 * 24 * time.Hour),
	}
	if performance != nil {
		pid := performance.ID
		o.PerformanceID = &pid
	}
	for _, opt := range opts {
		opt(o)
	}
	o, err := repository.NewOfferRepository().Create(context.Background(), f.db, o, kind)
	if err != nil {
		f.t.Fatalf("failed to create offer: %v", err)
	}
	return o
}

func (f *Fixtures) Customer(email string, subscriber bool) *model.Customer {
	f.t.Helper()
	c, err := repository.NewCustomerRepository().Create(context.Background(), f.db, &model.Customer{
		Name:       email,
		Email:      email,
		Subscriber: subscriber,
	})
	if err != nil {
		f.t.Fatalf("failed to create customer: %v", err)
	}
	return c
}

// Units 直接寫入已劃位的票，模擬既有銷售
func (f *Fixtures) Units(kind *model.VoucherKind, performance *model.Performance, customerID int64, n int) []*model.InventoryUnit {
	f.t.Helper()
	repo := repository.NewInventoryUnitRepository()
	units := make([]*model.InventoryUnit, 0, n)
	for i := 0; i < n; i++ {
		u := model.NewUnitFromKind(kind, customerID, model.PurchaseMethodCash, "", 0)
		if performance != nil {
			u.Bind(performance.ID)
		}
		if err := repo.Create(context.Background(), f.db, u); err != nil {
			f.t.Fatalf("failed to create unit: %v", err)
		}
		units = append(units, u)
	}
	return units
}

func WithMaxSales(n int) func(*model.Offer) {
	return func(o *model.Offer) { o.MaxSalesForType = &n }
}

func WithPromoCode(code string) func(*model.Offer) {
	return func(o *model.Offer) { o.PromoCode = code }
}

func WithSalesWindow(start, end time.Time) func(*model.Offer) {
	return func(o *model.Offer) {
		o.StartSales = start
		o.EndSales = end
	}
}

func WithAudience(a model.Audience) func(*model.VoucherKind) {
	return func(k *model.VoucherKind) { k.Audience = a }
}

func WithUniquePerformance(p *model.Performance) func(*model.VoucherKind) {
	return func(k *model.VoucherKind) {
		pid := p.ID
		k.UniquePerformanceID = &pid
	}
}

func WithCategory(c model.Category) func(*model.VoucherKind) {
	return func(k *model.VoucherKind) { k.Category = c }
}

func WithComponents(components ...model.BundleComponent) func(*model.VoucherKind) {
	return func(k *model.VoucherKind) {
		k.Category = model.CategoryBundle
		k.Components = components
	}
}
