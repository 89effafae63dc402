package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) *LotRepository {
	return &LotRepository{db: db}
}

// CreateWithReceipt persists a new lot and its paired Receipt ledger entry
// in one database transaction. Either both rows commit or neither does.
func (r *LotRepository) CreateWithReceipt(ctx context.Context, lot *entity.InventoryLot, receipt *entity.InventoryTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lot).Error; err != nil {
			return err
		}
		receipt.LotNumber = lot.LotNumber
		return tx.Create(receipt).Error
	})
}

// AppendTransaction loads the lot under a row lock, lets mutate adjust the
// in-memory availability and build the ledger entry, then commits the
// availability update and the append together. mutate returning an error
// aborts the whole unit of work.
func (r *LotRepository) AppendTransaction(ctx context.Context, lotNumber string, mutate func(lot *entity.InventoryLot) (*entity.InventoryTransaction, error)) (*entity.InventoryTransaction, error) {
	var out *entity.InventoryTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lot entity.InventoryLot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&lot, "lot_number = ?", lotNumber).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		txn, err := mutate(&lot)
		if err != nil {
			return err
		}

		lot.ModifiedDate = time.Now()
		if err := tx.Model(&entity.InventoryLot{}).
			Where("lot_number = ?", lotNumber).
			Updates(map[string]interface{}{
				"quantity_available": lot.QuantityAvailable,
				"modified_date":      lot.ModifiedDate,
			}).Error; err != nil {
			return err
		}

		txn.LotNumber = lotNumber
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus persists a status change (and optional notes) in one write.
// Last write wins; row-level isolation is the only ordering guarantee.
func (r *LotRepository) UpdateStatus(ctx context.Context, lotNumber, status, notes string) error {
	updates := map[string]interface{}{
		"lot_status":    status,
		"modified_date": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}
	res := r.db.WithContext(ctx).Model(&entity.InventoryLot{}).
		Where("lot_number = ?", lotNumber).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LotRepository) FindByNumber(ctx context.Context, lotNumber string) (*entity.InventoryLot, error) {
	var lot entity.InventoryLot
	err := r.db.WithContext(ctx).
		Preload("Material").
		First(&lot, "lot_number = ?", lotNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// LotListParams filters ListLots. Zero values mean no filter.
type LotListParams struct {
	Status     string
	MaterialID string
	Limit      int
}

func (r *LotRepository) List(ctx context.Context, params LotListParams) ([]entity.InventoryLot, error) {
	query := r.db.WithContext(ctx).Model(&entity.InventoryLot{}).Preload("Material")
	if params.Status != "" {
		query = query.Where("lot_status = ?", params.Status)
	}
	if params.MaterialID != "" {
		query = query.Where("material_id = ?", params.MaterialID)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	var lots []entity.InventoryLot
	err := query.Order("received_date DESC").Limit(limit).Find(&lots).Error
	return lots, err
}
