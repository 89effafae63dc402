package repository

import (
	"context"
	"errors"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, m *entity.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) FindByID(ctx context.Context, materialID string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.WithContext(ctx).First(&m, "material_id = ?", materialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) ListAll(ctx context.Context) ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.WithContext(ctx).
		Order("material_id ASC").
		Find(&materials).Error
	return materials, err
}
