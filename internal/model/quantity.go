package model

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Quantity 可售數量：Unlimited 或 Bounded(n)，n 永遠 >= 0
type Quantity struct {
	bounded bool
	n       int
}

func Unlimited() Quantity {
	return Quantity{}
}

// Bounded 負數一律視為 0
func Bounded(n int) Quantity {
	if n < 0 {
		n = 0
	}
	return Quantity{bounded: true, n: n}
}

func (q Quantity) IsUnlimited() bool {
	return !q.bounded
}

// Value 回傳上限；unlimited 時 ok 為 false
func (q Quantity) Value() (n int, ok bool) {
	return q.n, q.bounded
}

func (q Quantity) IsZero() bool {
	return q.bounded && q.n == 0
}

// Covers 檢查是否足以容納 want 張
func (q Quantity) Covers(want int) bool {
	return !q.bounded || q.n >= want
}

func (q Quantity) Min(other Quantity) Quantity {
	switch {
	case !q.bounded:
		return other
	case !other.bounded:
		return q
	case other.n < q.n:
		return other
	default:
		return q
	}
}

// Minus 扣除 n 張；unlimited 不變
func (q Quantity) Minus(n int) Quantity {
	if !q.bounded {
		return q
	}
	return Bounded(q.n - n)
}

func (q Quantity) String() string {
	if !q.bounded {
		return "unlimited"
	}
	return strconv.Itoa(q.n)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.bounded {
		return []byte(`"unlimited"`), nil
	}
	return []byte(strconv.Itoa(q.n)), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "unlimited" {
			return errors.New("quantity: expected number or \"unlimited\"")
		}
		*q = Unlimited()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = Bounded(n)
	return nil
}
