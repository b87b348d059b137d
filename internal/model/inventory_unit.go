package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// UnitState 票券的劃位狀態
type UnitState string

const (
	UnitStateUnreserved UnitState = "unreserved"
	UnitStateReserved   UnitState = "reserved"
	UnitStateCheckedIn  UnitState = "checked_in"
)

// IsValid 驗證狀態是否有效
func (s UnitState) IsValid() bool {
	switch s {
	case UnitStateUnreserved, UnitStateReserved, UnitStateCheckedIn:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s UnitState) CanTransitionTo(target UnitState) bool {
	transitions := map[UnitState][]UnitState{
		UnitStateUnreserved: {UnitStateReserved},
		UnitStateReserved:   {UnitStateUnreserved, UnitStateCheckedIn, UnitStateReserved},
		UnitStateCheckedIn:  {UnitStateReserved}, // 取消報到
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}

// PurchaseMethod 付款方式，引擎只負責原樣記錄
type PurchaseMethod string

const (
	PurchaseMethodCredit      PurchaseMethod = "credit"
	PurchaseMethodBoxOfficeCC PurchaseMethod = "box_cc"
	PurchaseMethodCash        PurchaseMethod = "cash"
	PurchaseMethodCheck       PurchaseMethod = "check"
	PurchaseMethodNone        PurchaseMethod = "none"
)

func (m PurchaseMethod) IsValid() bool {
	switch m {
	case PurchaseMethodCredit, PurchaseMethodBoxOfficeCC, PurchaseMethodCash, PurchaseMethodCheck, PurchaseMethodNone:
		return true
	}
	return false
}

// InventoryUnit 一張實體票 (voucher)
type InventoryUnit struct {
	bun.BaseModel `bun:"table:inventory_units,alias:iu"`

	ID             int64           `json:"id" bun:"id,pk,autoincrement"`
	VoucherKindID  int64           `json:"voucher_kind_id" bun:"voucher_kind_id,notnull"`
	CustomerID     *int64          `json:"customer_id,omitempty" bun:"customer_id"`
	PerformanceID  *int64          `json:"performance_id,omitempty" bun:"performance_id"`
	BundleID       *int64          `json:"bundle_id,omitempty" bun:"bundle_id"`
	State          UnitState       `json:"state" bun:"state,notnull"`
	PurchaseMethod PurchaseMethod  `json:"purchase_method" bun:"purchase_method,notnull"`
	Price          decimal.Decimal `json:"price" bun:"price,type:decimal(10,2),notnull"`
	Comment        string          `json:"comment,omitempty" bun:"comment,notnull,default:''"`
	ProcessedBy    int64           `json:"processed_by" bun:"processed_by,notnull,default:0"`
	CheckedInAt    *time.Time      `json:"checked_in_at,omitempty" bun:"checked_in_at"`
	CreatedAt      time.Time       `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time       `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" bun:"deleted_at"`
	DestroyedBy    *int64          `json:"destroyed_by,omitempty" bun:"destroyed_by"`
}

// IsDeleted 檢查票券是否已銷毀
func (u *InventoryUnit) IsDeleted() bool {
	return u.DeletedAt != nil
}

// IsBoundTo 是否已劃位到指定場次
func (u *InventoryUnit) IsBoundTo(performanceID int64) bool {
	return u.PerformanceID != nil && *u.PerformanceID == performanceID
}

// NewUnitFromKind 以票種為範本建立未劃位的票
func NewUnitFromKind(kind *VoucherKind, customerID int64, method PurchaseMethod, comment string, actorID int64) *InventoryUnit {
	cid := customerID
	return &InventoryUnit{
		VoucherKindID:  kind.ID,
		CustomerID:     &cid,
		State:          UnitStateUnreserved,
		PurchaseMethod: method,
		Price:          kind.Price,
		Comment:        comment,
		ProcessedBy:    actorID,
	}
}

// Bind 劃位到指定場次
func (u *InventoryUnit) Bind(performanceID int64) {
	pid := performanceID
	u.PerformanceID = &pid
	u.State = UnitStateReserved
}

// AllocationRequest 購票請求
type AllocationRequest struct {
	OfferID        int64          `json:"offer_id" binding:"required"`
	CustomerID     int64          `json:"customer_id"`
	Quantity       int            `json:"quantity" binding:"required,min=1"`
	PurchaseMethod PurchaseMethod `json:"purchase_method" binding:"required"`
	PromoCode      string         `json:"promo_code"`
	Comment        string         `json:"comment"`
	ActorID        int64          `json:"actor_id"`
}

// PurchaseResponse 購票結果
type PurchaseResponse struct {
	UnitIDs    []int64         `json:"unit_ids"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ModifyAction string

const (
	ModifyActionDestroy  ModifyAction = "destroy"
	ModifyActionTransfer ModifyAction = "transfer"
)

// ModifyRequest 批次銷毀或轉場
type ModifyRequest struct {
	UnitIDs                  []int64      `json:"unit_ids" binding:"required,min=1"`
	Action                   ModifyAction `json:"action" binding:"required,oneof=destroy transfer"`
	DestinationPerformanceID *int64       `json:"destination_performance_id"`
	ActorID                  int64        `json:"actor_id"`
}

// ModifyOutcome 批次操作結果
type ModifyOutcome struct {
	Action   ModifyAction `json:"action"`
	Affected int          `json:"affected"`
}

type CheckInRequest struct {
	UnitIDs []int64 `json:"unit_ids" binding:"required,min=1"`
	Uncheck bool    `json:"uncheck"`
}

// HolderRequest 轉讓給其他顧客
type HolderRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
}

// ReservationRequest 已持有的票劃位
type ReservationRequest struct {
	PerformanceID int64 `json:"performance_id" binding:"required"`
	ActorID       int64 `json:"actor_id"`
}

// QuoteQuery 查詢可售票種
type QuoteQuery struct {
	CustomerID int64  `form:"customer_id"`
	PromoCode  string `form:"promo_code"`
}
