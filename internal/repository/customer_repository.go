package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"

	"github.com/uptrace/bun"
)

type CustomerRepository interface {
	Create(ctx context.Context, db bun.IDB, customer *model.Customer) (*model.Customer, error)
	FindByID(ctx context.Context, db bun.IDB, id int64) (*model.Customer, error)
	Exists(ctx context.Context, db bun.IDB, id int64) (bool, error)
}

type CustomerRepositoryImpl struct{}

func NewCustomerRepository() CustomerRepository {
	return &CustomerRepositoryImpl{}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, db bun.IDB, customer *model.Customer) (*model.Customer, error) {
	if customer.Email == "" {
		return nil, apperrors.ErrInvalidInput
	}
	_, err := db.NewInsert().Model(customer).Returning("*").Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// FindByID id 為 0 時回傳匿名顧客
func (r *CustomerRepositoryImpl) FindByID(ctx context.Context, db bun.IDB, id int64) (*model.Customer, error) {
	if id == model.GenericCustomerID {
		return model.GenericCustomer(), nil
	}

	var customer model.Customer
	err := db.NewSelect().
		Model(&customer).
		Where("c.id = ?", id).
		Where("c.deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepositoryImpl) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	return db.NewSelect().
		Model((*model.Customer)(nil)).
		Where("c.id = ?", id).
		Where("c.deleted_at IS NULL").
		Exists(ctx)
}
