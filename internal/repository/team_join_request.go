package repository

import (
	"context"

	"powercup-backend/internal/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamJoinRequestRepository handles pending invitations and join requests
type TeamJoinRequestRepository struct {
	db *gorm.DB
}

// NewTeamJoinRequestRepository creates a new join request repository
func NewTeamJoinRequestRepository(db *gorm.DB) *TeamJoinRequestRepository {
	return &TeamJoinRequestRepository{db: db}
}

// Get retrieves the pending row for a (team, user) pair regardless of its kind
func (r *TeamJoinRequestRepository) Get(ctx context.Context, teamID, userID uint) (*models.TeamJoinRequest, error) {
	var request models.TeamJoinRequest
	err := r.db.WithContext(ctx).
		First(&request, "team_id = ? AND user_id = ?", teamID, userID).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create stores a pending invitation or request
func (r *TeamJoinRequestRepository) Create(ctx context.Context, request *models.TeamJoinRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error
}

// Delete removes a pending row of the given kind
func (r *TeamJoinRequestRepository) Delete(ctx context.Context, teamID, userID uint, kind models.JoinRequestType) error {
	return deleteJoinRequest(r.db.WithContext(ctx), teamID, userID, kind)
}

// Accept removes the pending row and inserts the membership atomically.
// Returns gorm.ErrRecordNotFound when the row was already resolved.
func (r *TeamJoinRequestRepository) Accept(ctx context.Context, teamID, userID uint, kind models.JoinRequestType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteJoinRequest(tx, teamID, userID, kind); err != nil {
			return err
		}
		member := models.TeamMember{TeamID: teamID, MemberID: userID, Role: models.TeamRoleMember}
		return tx.Omit(clause.Associations).Create(&member).Error
	})
}

// ListByUser lists the pending rows of one kind addressed to or sent by a user
func (r *TeamJoinRequestRepository) ListByUser(ctx context.Context, userID uint, kind models.JoinRequestType) ([]models.TeamJoinRequest, error) {
	var requests []models.TeamJoinRequest
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ? AND type = ?", userID, kind).
		Order("created_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByTeam lists every pending row of a team
func (r *TeamJoinRequestRepository) ListByTeam(ctx context.Context, teamID uint) ([]models.TeamJoinRequest, error) {
	var requests []models.TeamJoinRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("created_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func deleteJoinRequest(db *gorm.DB, teamID, userID uint, kind models.JoinRequestType) error {
	result := db.Where("team_id = ? AND user_id = ? AND type = ?", teamID, userID, kind).
		Delete(&models.TeamJoinRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
