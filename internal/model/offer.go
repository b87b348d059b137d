package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Offer 票種在某場次的販售規則 (valid voucher)；套票的 PerformanceID 為 nil
type Offer struct {
	bun.BaseModel `bun:"table:offers,alias:o"`

	ID              int64     `json:"id" bun:"id,pk,autoincrement"`
	VoucherKindID   int64     `json:"voucher_kind_id" bun:"voucher_kind_id,notnull"`
	PerformanceID   *int64    `json:"performance_id,omitempty" bun:"performance_id"`
	MaxSalesForType *int      `json:"max_sales_for_type,omitempty" bun:"max_sales_for_type"`
	StartSales      time.Time `json:"start_sales" bun:"start_sales,notnull"`
	EndSales        time.Time `json:"end_sales" bun:"end_sales,notnull"`
	PromoCode       string    `json:"promo_code,omitempty" bun:"promo_code,notnull,default:''"`
	CreatedAt       time.Time `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// MaxSales 票種上限；未設定即 unlimited
func (o *Offer) MaxSales() Quantity {
	if o.MaxSalesForType == nil {
		return Unlimited()
	}
	return Bounded(*o.MaxSalesForType)
}

func (o *Offer) RequiresPromoCode() bool {
	return strings.TrimSpace(o.PromoCode) != ""
}

// AcceptsPromoCode PromoCode 可為逗號分隔的多組代碼，不分大小寫
func (o *Offer) AcceptsPromoCode(supplied string) bool {
	if !o.RequiresPromoCode() {
		return true
	}
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return false
	}
	for _, code := range strings.Split(o.PromoCode, ",") {
		if strings.EqualFold(strings.TrimSpace(code), supplied) {
			return true
		}
	}
	return false
}

// Validate 寫入前檢查：日期區間與票種有效期
func (o *Offer) Validate(kind *VoucherKind) error {
	if o.StartSales.IsZero() || o.EndSales.IsZero() {
		return errors.New("dates and times for start and end sales must be provided")
	}
	if o.StartSales.After(o.EndSales) {
		return errors.New("start sales time cannot be later than end sales time")
	}
	if o.MaxSalesForType != nil && *o.MaxSalesForType < 0 {
		return errors.New("max sales for type must be >= 0")
	}
	if kind == nil {
		return errors.New("voucher kind is required")
	}
	if o.VoucherKindID != kind.ID {
		return fmt.Errorf("voucher kind mismatch: offer has %d, got %d", o.VoucherKindID, kind.ID)
	}
	if !kind.IsBundle() && o.PerformanceID == nil {
		return fmt.Errorf("voucher kind %q requires a performance", kind.Name)
	}
	if o.EndSales.After(kind.ValidUntil) {
		return fmt.Errorf("voucher kind %q is valid until %s, but sales would continue until %s",
			kind.Name, kind.ValidUntil.Format(time.RFC3339), o.EndSales.Format(time.RFC3339))
	}
	return nil
}
