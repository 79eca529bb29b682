package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminRepository handles database operations for administrators
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create grants administrator rights to a user; granting twice is a no-op
func (r *AdminRepository) Create(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Admin{UserID: userID}).Error
}

// IsAdmin reports whether the user has administrator rights
func (r *AdminRepository) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
