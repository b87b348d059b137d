package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/model"

	"github.com/uptrace/bun"
)

type TxnRepository interface {
	Create(ctx context.Context, db bun.IDB, txn *model.Txn) error
	ListByCustomer(ctx context.Context, db bun.IDB, customerID int64) ([]*model.Txn, error)
	ListByType(ctx context.Context, db bun.IDB, txnType model.TxnType) ([]*model.Txn, error)
}

type TxnRepositoryImpl struct{}

func NewTxnRepository() TxnRepository {
	return &TxnRepositoryImpl{}
}

func (r *TxnRepositoryImpl) Create(ctx context.Context, db bun.IDB, txn *model.Txn) error {
	if _, err := db.NewInsert().Model(txn).Returning("*").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create txn: %w", err)
	}
	return nil
}

func (r *TxnRepositoryImpl) ListByCustomer(ctx context.Context, db bun.IDB, customerID int64) ([]*model.Txn, error) {
	txns := make([]*model.Txn, 0)
	err := db.NewSelect().
		Model(&txns).
		Where("t.customer_id = ?", customerID).
		Order("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *TxnRepositoryImpl) ListByType(ctx context.Context, db bun.IDB, txnType model.TxnType) ([]*model.Txn, error) {
	txns := make([]*model.Txn, 0)
	err := db.NewSelect().
		Model(&txns).
		Where("t.txn_type = ?", txnType).
		Order("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txns, nil
}
