package model

import (
	"time"

	"github.com/uptrace/bun"
)

// GenericCustomerID 未登入 / 匿名顧客
const GenericCustomerID int64 = 0

type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID         int64      `json:"id" bun:"id,pk,autoincrement"`
	Name       string     `json:"name" bun:"name,notnull"`
	Email      string     `json:"email" bun:"email,unique,notnull"`
	Subscriber bool       `json:"subscriber" bun:"subscriber,notnull,default:false"`
	Staff      bool       `json:"staff" bun:"staff,notnull,default:false"`
	CreatedAt  time.Time  `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time  `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" bun:"deleted_at"`
}

// GenericCustomer 匿名顧客：非訂閱者、非售票員
func GenericCustomer() *Customer {
	return &Customer{ID: GenericCustomerID, Name: "generic customer"}
}

func (c *Customer) IsSubscriber() bool {
	return c != nil && c.Subscriber
}

func (c *Customer) IsStaff() bool {
	return c != nil && c.Staff
}
