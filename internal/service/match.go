package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"
	"powercup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// MatchService handles match creation and the status lifecycle
type MatchService struct {
	matchRepo repository.MatchRepositoryInterface
	teamRepo  repository.TeamRepositoryInterface
	validator *validator.Validate
	now       func() time.Time
}

// NewMatchService creates a new match service
func NewMatchService(matchRepo repository.MatchRepositoryInterface, teamRepo repository.TeamRepositoryInterface, validator *validator.Validate) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		validator: validator,
		now:       time.Now,
	}
}

// CreateMatchRequest represents the request to create a match between two teams
type CreateMatchRequest struct {
	FirstTeamID  uint             `json:"first_team_id" validate:"required" example:"1"`
	SecondTeamID uint             `json:"second_team_id" validate:"required" example:"2"`
	Type         models.MatchType `json:"type,omitempty" example:"competitive"`
}

// EditMatchRequest represents a status transition of a match
type EditMatchRequest struct {
	MatchID  uint               `json:"match_id" validate:"required" example:"1"`
	Status   models.MatchStatus `json:"status" validate:"required" example:"in_progress"`
	WinnerID *uint              `json:"winner_id,omitempty" example:"1"`
}

// Create creates a competitive match between two distinct existing teams
func (s *MatchService) Create(ctx context.Context, req *CreateMatchRequest) (*MatchResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	if req.Type == "" {
		req.Type = models.MatchTypeCompetitive
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError("type", "invalid match type")
	}
	if req.Type != models.MatchTypeCompetitive {
		return nil, apperrors.ErrUnsupportedMatchType
	}
	if req.FirstTeamID == req.SecondTeamID {
		return nil, apperrors.ErrSameTeams
	}

	for _, teamID := range []uint{req.FirstTeamID, req.SecondTeamID} {
		if _, err := findTeam(ctx, s.teamRepo, teamID); err != nil {
			return nil, err
		}
	}

	match := &models.Match{
		Type:   req.Type,
		Status: models.MatchStatusPreparing,
		Members: []models.MatchMember{
			{TeamID: req.FirstTeamID},
			{TeamID: req.SecondTeamID},
		},
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	logger.WithContext(ctx).Infof("created match %d between teams %d and %d", match.ID, req.FirstTeamID, req.SecondTeamID)
	return s.Get(ctx, match.ID)
}

// Get returns a match with its teams
func (s *MatchService) Get(ctx context.Context, id uint) (*MatchResponse, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	resp := toMatchResponse(match)
	return &resp, nil
}

// GetAll returns every match
func (s *MatchService) GetAll(ctx context.Context) ([]MatchResponse, error) {
	matches, err := s.matchRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	out := make([]MatchResponse, 0, len(matches))
	for i := range matches {
		out = append(out, toMatchResponse(&matches[i]))
	}
	return out, nil
}

// Edit moves a match to a new status.
//
//	preparing   -> in_progress  sets started_at
//	in_progress -> finished     requires a participating winner, sets finished_at
//	any but finished -> cancelled  optional participating winner, sets finished_at
//
// The update is conditioned on the status that was read, so a concurrent
// transition makes it fail with ErrMatchStatusChanged.
func (s *MatchService) Edit(ctx context.Context, req *EditMatchRequest) (*MatchResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	if !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	match, err := s.matchRepo.GetByID(ctx, req.MatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	updates, err := s.transition(match, req)
	if err != nil {
		return nil, err
	}

	if err := s.matchRepo.UpdateStatus(ctx, match.ID, match.Status, updates); err != nil {
		switch {
		case errors.Is(err, repository.ErrConcurrentUpdate):
			return nil, apperrors.ErrMatchStatusChanged
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	logger.WithContext(ctx).Infof("match %d moved from %s to %s", match.ID, match.Status, req.Status)
	return s.Get(ctx, match.ID)
}

func (s *MatchService) transition(match *models.Match, req *EditMatchRequest) (map[string]interface{}, error) {
	if req.Status == match.Status {
		return nil, apperrors.ErrSameStatus
	}

	now := s.now()
	updates := map[string]interface{}{"status": req.Status}

	switch req.Status {
	case models.MatchStatusInProgress:
		if match.Status != models.MatchStatusPreparing {
			return nil, invalidTransition(match.Status, req.Status)
		}
		updates["started_at"] = now
	case models.MatchStatusFinished:
		if match.Status != models.MatchStatusInProgress {
			return nil, invalidTransition(match.Status, req.Status)
		}
		if req.WinnerID == nil {
			return nil, apperrors.ErrWinnerRequired
		}
		if !match.HasTeam(*req.WinnerID) {
			return nil, notParticipating(*req.WinnerID)
		}
		updates["team_winner_id"] = *req.WinnerID
		updates["finished_at"] = now
	case models.MatchStatusCancelled:
		if match.Status == models.MatchStatusFinished {
			return nil, invalidTransition(match.Status, req.Status)
		}
		if req.WinnerID != nil {
			if !match.HasTeam(*req.WinnerID) {
				return nil, notParticipating(*req.WinnerID)
			}
			updates["team_winner_id"] = *req.WinnerID
		}
		updates["finished_at"] = now
	default:
		return nil, invalidTransition(match.Status, req.Status)
	}
	return updates, nil
}

func invalidTransition(from, to models.MatchStatus) error {
	return apperrors.NewValidationError("status", fmt.Sprintf("cannot change match status from %s to %s", from, to))
}

func notParticipating(teamID uint) error {
	return apperrors.NewValidationError("winner_id", fmt.Sprintf("Team with ID %d does not participate in the match", teamID))
}
