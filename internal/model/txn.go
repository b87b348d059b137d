package model

import (
	"time"

	"github.com/uptrace/bun"
)

// TxnType 稽核紀錄類型
type TxnType string

const (
	TxnTicketPurchase    TxnType = "tkt_purch"
	TxnTicketTransfer    TxnType = "tkt_xfer"
	TxnTicketDestroy     TxnType = "tkt_del"
	TxnTicketGift        TxnType = "tkt_gift"
	TxnReservationMade   TxnType = "res_made"
	TxnReservationCancel TxnType = "res_cancl"
	TxnTicketCheckIn     TxnType = "tkt_checkin"
	TxnTicketUndoCheckIn TxnType = "tkt_uncheckin"
)

// Txn 只新增不修改的稽核紀錄
type Txn struct {
	bun.BaseModel `bun:"table:txns,alias:t"`

	ID             int64          `json:"id" bun:"id,pk,autoincrement"`
	Type           TxnType        `json:"txn_type" bun:"txn_type,notnull"`
	CustomerID     int64          `json:"customer_id" bun:"customer_id,notnull,default:0"`
	PerformanceID  *int64         `json:"performance_id,omitempty" bun:"performance_id"`
	UnitIDs        string         `json:"unit_ids" bun:"unit_ids,notnull,default:''"`
	Comments       string         `json:"comments" bun:"comments,notnull,default:''"`
	PurchaseMethod PurchaseMethod `json:"purchase_method,omitempty" bun:"purchase_method,notnull,default:''"`
	ActorID        int64          `json:"actor_id" bun:"actor_id,notnull,default:0"`
	CreatedAt      time.Time      `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
