package repository

import (
	"context"
	"time"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert refreshes the user snapshot for an authenticated caller.
func (r *UserRepository) Upsert(ctx context.Context, user *entity.User) error {
	user.LastSeenAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "email", "last_seen_at"}),
	}).Create(user).Error
}
