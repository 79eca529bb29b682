package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamMemberRepository handles database operations for team memberships
type TeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team member repository
func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// Get retrieves the membership of a user in a team
func (r *TeamMemberRepository) Get(ctx context.Context, teamID, userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).
		First(&member, "team_id = ? AND member_id = ?", teamID, userID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Create adds a membership
func (r *TeamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

// UpdateRole changes the role of an existing membership
func (r *TeamMemberRepository) UpdateRole(ctx context.Context, teamID, userID uint, role models.TeamRole) error {
	result := r.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND member_id = ?", teamID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a membership
func (r *TeamMemberRepository) Delete(ctx context.Context, teamID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND member_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
