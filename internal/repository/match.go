package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository handles database operations for matches
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func preloadMatch(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_id")
		}).
		Preload("Members.Team.Members.User").
		Preload("Winner")
}

// Create inserts the match and its participating teams in one transaction
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(match).Error; err != nil {
			return err
		}
		for i := range match.Members {
			match.Members[i].MatchID = match.ID
			if err := tx.Omit(clause.Associations).Create(&match.Members[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a match with its teams and winner
func (r *MatchRepository) GetByID(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	err := preloadMatch(r.db.WithContext(ctx)).First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetAll retrieves all matches with their teams and winners
func (r *MatchRepository) GetAll(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := preloadMatch(r.db.WithContext(ctx)).Order("id").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateStatus applies the updates only while the match is still in the expected status.
// Returns ErrConcurrentUpdate when another request moved the match first.
func (r *MatchRepository) UpdateStatus(ctx context.Context, id uint, from models.MatchStatus, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}
