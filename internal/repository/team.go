package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func preloadMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("member_id")
	}).Preload("Members.User")
}

// CreateWithOwner creates the team, the owner's membership and the initial invitations in one transaction
func (r *TeamRepository) CreateWithOwner(ctx context.Context, team *models.Team, ownerID uint, inviteIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(team).Error; err != nil {
			return err
		}

		owner := models.TeamMember{TeamID: team.ID, MemberID: ownerID, Role: models.TeamRoleOwner}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		for _, userID := range inviteIDs {
			invite := models.TeamJoinRequest{TeamID: team.ID, UserID: userID, Type: models.JoinRequestTypeInvite}
			if err := tx.Omit(clause.Associations).Create(&invite).Error; err != nil {
				return err
			}
		}

		team.Members = []models.TeamMember{owner}
		return nil
	})
}

// GetByID retrieves a team by ID with its members
func (r *TeamRepository) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := preloadMembers(r.db.WithContext(ctx)).First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByName retrieves a team by name, ignoring case, with its members
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	err := preloadMembers(r.db.WithContext(ctx)).First(&team, "lower(name) = lower(?)", name).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetAll retrieves all teams with their members
func (r *TeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := preloadMembers(r.db.WithContext(ctx)).Order("id").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// GetByMemberID retrieves every team the user belongs to
func (r *TeamRepository) GetByMemberID(ctx context.Context, userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := preloadMembers(r.db.WithContext(ctx)).
		Where("id IN (?)", r.db.Model(&models.TeamMember{}).Select("team_id").Where("member_id = ?", userID)).
		Order("id").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ExistsByName reports whether another team already uses the name, ignoring case
func (r *TeamRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Team{}).Where("lower(name) = lower(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Update applies partial updates to a team
func (r *TeamRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete deletes a team; memberships, requests and participations cascade
func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
