package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Category 票種類別
type Category string

const (
	CategoryRevenue    Category = "revenue"
	CategoryComp       Category = "comp"
	CategorySubscriber Category = "subscriber"
	CategoryBundle     Category = "bundle"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryRevenue, CategoryComp, CategorySubscriber, CategoryBundle:
		return true
	}
	return false
}

// Audience 誰可以看到這個票種
type Audience string

const (
	AudienceAnyone      Audience = "anyone"
	AudienceSubscribers Audience = "subscribers"
	AudienceBoxOffice   Audience = "box_office"
	AudienceExternal    Audience = "external"
)

func (a Audience) String() string {
	switch a {
	case AudienceAnyone:
		return "anyone"
	case AudienceSubscribers:
		return "subscribers only"
	case AudienceBoxOffice:
		return "box office only"
	case AudienceExternal:
		return "external resellers"
	}
	return string(a)
}

// VisibleTo 判斷顧客是否屬於此票種的開放對象
func (a Audience) VisibleTo(c *Customer) bool {
	switch a {
	case AudienceAnyone, "":
		return true
	case AudienceSubscribers:
		return c.IsSubscriber() || c.IsStaff()
	case AudienceBoxOffice:
		return c.IsStaff()
	default:
		return false
	}
}

// VoucherKind 可購買的票種範本
type VoucherKind struct {
	bun.BaseModel `bun:"table:voucher_kinds,alias:vk"`

	ID                  int64           `json:"id" bun:"id,pk,autoincrement"`
	Name                string          `json:"name" bun:"name,notnull"`
	Price               decimal.Decimal `json:"price" bun:"price,type:decimal(10,2),notnull"`
	Category            Category        `json:"category" bun:"category,notnull"`
	Audience            Audience        `json:"audience" bun:"audience,notnull"`
	ValidFrom           time.Time       `json:"valid_from" bun:"valid_from,notnull"`
	ValidUntil          time.Time       `json:"valid_until" bun:"valid_until,notnull"`
	UniquePerformanceID *int64          `json:"unique_performance_id,omitempty" bun:"unique_performance_id"`
	CreatedAt           time.Time       `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`

	Components []BundleComponent `json:"components,omitempty" bun:"-"`
}

func (k *VoucherKind) IsBundle() bool {
	return k.Category == CategoryBundle
}

// IsMonogamous 每張票必須綁定單一指定場次
func (k *VoucherKind) IsMonogamous() bool {
	return k.UniquePerformanceID != nil
}

// BundleComponent 套票內含的票種與張數
type BundleComponent struct {
	bun.BaseModel `bun:"table:bundle_components,alias:bc"`

	ID              int64 `json:"id" bun:"id,pk,autoincrement"`
	BundleKindID    int64 `json:"bundle_kind_id" bun:"bundle_kind_id,notnull"`
	ComponentKindID int64 `json:"component_kind_id" bun:"component_kind_id,notnull"`
	Quantity        int   `json:"quantity" bun:"quantity,notnull"`

	Kind *VoucherKind `json:"kind,omitempty" bun:"-"`
}
