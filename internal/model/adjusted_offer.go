package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AdjustedOffer 針對特定顧客 / 優惠碼即時計算出的可售快照，建立後不可變
type AdjustedOffer struct {
	offerID       int64
	voucherKindID int64
	performanceID *int64
	name          string
	price         decimal.Decimal
	category      Category
	visible       bool
	quantity      Quantity
	explanation   string
}

// NewAdjustedOffer 只由 resolver 建立
func NewAdjustedOffer(offer *Offer, kind *VoucherKind, visible bool, quantity Quantity, explanation string) AdjustedOffer {
	a := AdjustedOffer{
		offerID:       offer.ID,
		voucherKindID: offer.VoucherKindID,
		visible:       visible,
		quantity:      quantity,
		explanation:   explanation,
	}
	if offer.PerformanceID != nil {
		pid := *offer.PerformanceID
		a.performanceID = &pid
	}
	if kind != nil {
		a.name = kind.Name
		a.price = kind.Price
		a.category = kind.Category
	}
	return a
}

func (a AdjustedOffer) OfferID() int64 { return a.offerID }
func (a AdjustedOffer) VoucherKindID() int64 { return a.voucherKindID }
func (a AdjustedOffer) Name() string { return a.name }
func (a AdjustedOffer) Price() decimal.Decimal { return a.price }
func (a AdjustedOffer) Category() Category { return a.category }
func (a AdjustedOffer) Visible() bool { return a.visible }
func (a AdjustedOffer) Quantity() Quantity { return a.quantity }
func (a AdjustedOffer) Explanation() string { return a.explanation }

func (a AdjustedOffer) PerformanceID() (int64, bool) {
	if a.performanceID == nil {
		return 0, false
	}
	return *a.performanceID, true
}

// Available 是否至少能買一張
func (a AdjustedOffer) Available() bool {
	return a.quantity.Covers(1)
}

func (a AdjustedOffer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		OfferID       int64           `json:"offer_id"`
		VoucherKindID int64           `json:"voucher_kind_id"`
		PerformanceID *int64          `json:"performance_id,omitempty"`
		Name          string          `json:"name"`
		Price         decimal.Decimal `json:"price"`
		Category      Category        `json:"category"`
		Visible       bool            `json:"visible"`
		Quantity      Quantity        `json:"quantity"`
		Explanation   string          `json:"explanation"`
	}{
		OfferID:       a.offerID,
		VoucherKindID: a.voucherKindID,
		PerformanceID: a.performanceID,
		Name:          a.name,
		Price:         a.price,
		Category:      a.category,
		Visible:       a.visible,
		Quantity:      a.quantity,
		Explanation:   a.explanation,
	})
}
