package resolver

import (
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	"time"
)

// Input 一次解析所需的全部資料，解析過程不讀寫任何外部狀態
type Input struct {
	Offer       *model.Offer
	Kind        *model.VoucherKind
	Performance *model.Performance // 找不到場次時為 nil
	Customer    *model.Customer
	PromoCode   string
	Now         time.Time

	// Remaining 場次剩餘座位；套票為 Unlimited
	Remaining model.Quantity
	// SoldOfKind 此票種已發出張數 (僅在有票種上限時計算)
	SoldOfKind int
}

// Verdict 單一關卡的判定
type Verdict struct {
	blocked     bool
	visible     bool
	explanation string
}

func Pass() Verdict {
	return Verdict{}
}

func Blocked(explanation string, visible bool) Verdict {
	return Verdict{blocked: true, visible: visible, explanation: explanation}
}

func (v Verdict) IsBlocked() bool     { return v.blocked }
func (v Verdict) Visible() bool       { return v.visible }
func (v Verdict) Explanation() string { return v.explanation }

type Gate func(in *Input) Verdict

var (
	saleGates        = []Gate{VisibilityGate, PerformanceGate, SalesWindowGate}
	reservationGates = []Gate{PerformanceGate, ReservationDeadlineGate}
	bundleGates      = []Gate{VisibilityGate}
)

const explanationTimeLayout = "Jan 2, 2006 3:04 PM"

// VisibilityGate 優惠碼與開放對象
func VisibilityGate(in *Input) Verdict {
	if !in.Offer.AcceptsPromoCode(in.PromoCode) {
		return Blocked("Promo code required", false)
	}
	if !in.Kind.Audience.VisibleTo(in.Customer) {
		return Blocked(fmt.Sprintf("Ticket sales of this type restricted to %s", in.Kind.Audience), false)
	}
	return Pass()
}

// PerformanceGate 場次是否存在、是否已過、是否完售
func PerformanceGate(in *Input) Verdict {
	if in.Performance == nil || in.Offer.PerformanceID == nil {
		return Blocked("Offer is not associated with a performance", false)
	}
	if in.Performance.IsPast(in.Now) {
		return Blocked("Event date is in the past", false)
	}
	if in.Remaining.IsZero() {
		return Blocked("Event is sold out", true)
	}
	return Pass()
}

// SalesWindowGate 預售截止與票種販售區間
func SalesWindowGate(in *Input) Verdict {
	if in.Performance.AdvanceSalesClosed(in.Now) {
		return Blocked("Advance sales for this performance are closed", true)
	}
	if in.Now.Before(in.Offer.StartSales) {
		return Blocked(fmt.Sprintf("Tickets of this type not on sale until %s", in.Offer.StartSales.Format(explanationTimeLayout)), true)
	}
	if in.Now.After(in.Offer.EndSales) {
		return Blocked(fmt.Sprintf("Tickets of this type not sold after %s", in.Offer.EndSales.Format(explanationTimeLayout)), true)
	}
	return Pass()
}

// ReservationDeadlineGate 已持有的票劃位截止
func ReservationDeadlineGate(in *Input) Verdict {
	if in.Now.After(in.Offer.EndSales) {
		return Blocked("Advance reservations for this performance are closed", true)
	}
	return Pass()
}

// Capacity 票種上限與場次剩餘取小者
func Capacity(in *Input) (model.Quantity, string) {
	perType := in.Offer.MaxSales()
	if !perType.IsUnlimited() {
		perType = perType.Minus(in.SoldOfKind)
	}
	q := perType.Min(in.Remaining)

	switch {
	case q.IsZero():
		return q, "No seats remaining for tickets of this type"
	case q.IsUnlimited():
		return q, "No performance-specific limit applies"
	default:
		n, _ := q.Value()
		return q, fmt.Sprintf("%d of these tickets remaining", n)
	}
}

// Evaluate 依序執行關卡，第一個擋下的關卡決定結果；全部通過才計算數量
func Evaluate(in Input, gates []Gate) model.AdjustedOffer {
	for _, gate := range gates {
		if v := gate(&in); v.IsBlocked() {
			return model.NewAdjustedOffer(in.Offer, in.Kind, v.Visible(), model.Bounded(0), v.Explanation())
		}
	}
	q, explanation := Capacity(&in)
	return model.NewAdjustedOffer(in.Offer, in.Kind, true, q, explanation)
}
