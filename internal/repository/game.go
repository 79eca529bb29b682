package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
)

// GameRepository handles database operations for games
type GameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create creates a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// GetByID retrieves a game by ID
func (r *GameRepository) GetByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetAll retrieves all games
func (r *GameRepository) GetAll(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.WithContext(ctx).Order("id").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// Update saves the name and short name of a game
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	result := r.db.WithContext(ctx).Model(&models.Game{}).
		Where("id = ?", game.ID).
		Updates(map[string]interface{}{"name": game.Name, "short_name": game.ShortName})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByName reports whether another game uses the name, ignoring case
func (r *GameRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	return r.exists(ctx, "lower(name) = lower(?)", name, excludeID)
}

// ExistsByShortName reports whether another game uses the short name, ignoring case
func (r *GameRepository) ExistsByShortName(ctx context.Context, shortName string, excludeID uint) (bool, error) {
	return r.exists(ctx, "lower(short_name) = lower(?)", shortName, excludeID)
}

func (r *GameRepository) exists(ctx context.Context, condition, value string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Game{}).Where(condition, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
