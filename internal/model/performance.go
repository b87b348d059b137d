package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Performance 演出場次，Capacity 為場館總座位數
type Performance struct {
	bun.BaseModel `bun:"table:performances,alias:p"`

	ID              int64     `json:"id" bun:"id,pk,autoincrement"`
	Name            string    `json:"name" bun:"name,notnull"`
	Capacity        int       `json:"capacity" bun:"capacity,notnull"`
	StartsAt        time.Time `json:"starts_at" bun:"starts_at,notnull"`
	AdvanceSalesEnd time.Time `json:"advance_sales_end" bun:"advance_sales_end,notnull"`
	CreatedAt       time.Time `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// IsPast 演出時間是否已過
func (p *Performance) IsPast(now time.Time) bool {
	return p.StartsAt.Before(now)
}

func (p *Performance) AdvanceSalesClosed(now time.Time) bool {
	return now.After(p.AdvanceSalesEnd)
}

// CapacityRequest 加開座位
type CapacityRequest struct {
	Seats int `json:"seats" binding:"required,min=1"`
}

// PerformanceStats 場次銷售概況 (門口報到用)
type PerformanceStats struct {
	PerformanceID int64   `json:"performance_id"`
	Capacity      int     `json:"capacity"`
	Sold          int     `json:"sold"`
	CheckedIn     int     `json:"checked_in"`
	Held          int     `json:"held"`
	Remaining     int     `json:"remaining"`
	PercentSold   float64 `json:"percent_sold"`
}
