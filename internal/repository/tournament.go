package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TournamentRepository handles database operations for tournaments and their participants
type TournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *gorm.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func preloadTournament(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Game").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Members.Team")
}

// Create creates a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(tournament).Error
}

// GetByID retrieves a tournament with its game and participants
func (r *TournamentRepository) GetByID(ctx context.Context, id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	err := preloadTournament(r.db.WithContext(ctx)).First(&tournament, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

// GetAll retrieves all tournaments with their games and participants
func (r *TournamentRepository) GetAll(ctx context.Context) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := preloadTournament(r.db.WithContext(ctx)).Order("id").Find(&tournaments).Error; err != nil {
		return nil, err
	}
	return tournaments, nil
}

// Update applies partial updates. When expected is set the update only happens while the
// tournament still has that status, otherwise ErrConcurrentUpdate is returned.
func (r *TournamentRepository) Update(ctx context.Context, id uint, expected models.TournamentStatus, updates map[string]interface{}) error {
	query := r.db.WithContext(ctx).Model(&models.Tournament{}).Where("id = ?", id)
	if expected != "" {
		query = query.Where("status = ?", expected)
	}
	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if expected != "" {
			return ErrConcurrentUpdate
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetMember retrieves the participation of a team in a tournament
func (r *TournamentRepository) GetMember(ctx context.Context, tournamentID, teamID uint) (*models.TournamentMember, error) {
	var member models.TournamentMember
	err := r.db.WithContext(ctx).
		First(&member, "tournament_id = ? AND team_id = ?", tournamentID, teamID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateMember stores a participation request
func (r *TournamentRepository) CreateMember(ctx context.Context, member *models.TournamentMember) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

// UpdateMemberStatus changes the status of an existing participation
func (r *TournamentRepository) UpdateMemberStatus(ctx context.Context, tournamentID, teamID uint, status models.TournamentMemberStatus) error {
	result := r.db.WithContext(ctx).Model(&models.TournamentMember{}).
		Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
