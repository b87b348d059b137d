package database

import (
	"context"
	"fmt"

	"go-gin-ticket-inventory/internal/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var tables = []interface{}{
	(*model.Performance)(nil),
	(*model.Customer)(nil),
	(*model.VoucherKind)(nil),
	(*model.BundleComponent)(nil),
	(*model.Offer)(nil),
	(*model.InventoryUnit)(nil),
	(*model.Txn)(nil),
}

type index struct {
	model   interface{}
	name    string
	columns []string
	unique  bool
}

var indexes = []index{
	// 同一場次同一票種只能有一筆販售規則 (套票 performance_id 為 NULL 不受限)
	{(*model.Offer)(nil), "offers_kind_performance_uidx", []string{"voucher_kind_id", "performance_id"}, true},
	{(*model.Offer)(nil), "offers_performance_idx", []string{"performance_id"}, false},
	{(*model.InventoryUnit)(nil), "inventory_units_performance_idx", []string{"performance_id", "deleted_at"}, false},
	{(*model.InventoryUnit)(nil), "inventory_units_kind_idx", []string{"voucher_kind_id", "performance_id"}, false},
	{(*model.InventoryUnit)(nil), "inventory_units_customer_idx", []string{"customer_id"}, false},
	{(*model.BundleComponent)(nil), "bundle_components_bundle_idx", []string{"bundle_kind_id"}, false},
}

// CreateSchema 建立資料表與索引 (可重複執行)
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table %T: %w", m, err)
		}
	}
	for _, idx := range indexes {
		q := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists()
		if idx.unique {
			q = q.Unique()
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// IsPostgres 只有 Postgres 支援 SELECT ... FOR UPDATE
func IsPostgres(db bun.IDB) bool {
	return db.Dialect().Name() == dialect.PG
}
