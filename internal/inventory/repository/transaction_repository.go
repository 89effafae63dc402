package repository

import (
	"context"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByLot returns a lot's ledger entries in insertion order.
func (r *TransactionRepository) ListByLot(ctx context.Context, lotNumber string) ([]entity.InventoryTransaction, error) {
	var txns []entity.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("lot_number = ?", lotNumber).
		Order("transaction_id ASC").
		Find(&txns).Error
	return txns, err
}

func (r *TransactionRepository) CountByLot(ctx context.Context, lotNumber string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InventoryTransaction{}).
		Where("lot_number = ?", lotNumber).
		Count(&count).Error
	return count, err
}
