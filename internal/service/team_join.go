package service

import (
	"context"
	"errors"
	"fmt"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"
	"powercup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// TeamJoinService handles invitations sent by teams and join requests sent by users
type TeamJoinService struct {
	teamRepo  repository.TeamRepositoryInterface
	joinRepo  repository.TeamJoinRequestRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewTeamJoinService creates a new join request service
func NewTeamJoinService(
	teamRepo repository.TeamRepositoryInterface,
	joinRepo repository.TeamJoinRequestRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	validator *validator.Validate,
) *TeamJoinService {
	return &TeamJoinService{
		teamRepo:  teamRepo,
		joinRepo:  joinRepo,
		userRepo:  userRepo,
		validator: validator,
	}
}

// TeamUserRequest identifies a (team, user) pair
type TeamUserRequest struct {
	TeamID uint `json:"team_id" validate:"required" example:"1"`
	UserID uint `json:"user_id" validate:"required" example:"2"`
}

// InvitationAnswer is the subject user's answer to an invitation
type InvitationAnswer struct {
	TeamID uint  `json:"team_id" validate:"required" example:"1"`
	Accept *bool `json:"accept" validate:"required" example:"true"`
}

// RequestAnswer is a team manager's answer to a join request
type RequestAnswer struct {
	TeamID uint  `json:"team_id" validate:"required" example:"1"`
	UserID uint  `json:"user_id" validate:"required" example:"2"`
	Accept *bool `json:"accept" validate:"required" example:"true"`
}

// pendingConflict checks that the user is neither a member nor has a pending row for the team
func (s *TeamJoinService) pendingConflict(ctx context.Context, team *models.Team, userID uint, self bool) error {
	if _, ok := roleOf(team, userID); ok {
		if self {
			return apperrors.ErrCallerAlreadyMember
		}
		return apperrors.ErrTeamMemberExists
	}

	existing, err := s.joinRepo.Get(ctx, team.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check pending requests: %w", err)
	}
	return pendingExistsError(existing.Type, self)
}

func pendingExistsError(kind models.JoinRequestType, self bool) error {
	switch {
	case kind == models.JoinRequestTypeInvite && self:
		return apperrors.ErrCallerAlreadyInvited
	case kind == models.JoinRequestTypeInvite:
		return apperrors.ErrAlreadyInvited
	case self:
		return apperrors.ErrCallerAlreadyRequested
	default:
		return apperrors.ErrAlreadyRequested
	}
}

// Invite sends an invitation from the team to a user
func (s *TeamJoinService) Invite(ctx context.Context, callerID uint, req *TeamUserRequest) (*JoinRequestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	team, _, err := authorizeManager(ctx, s.teamRepo, req.TeamID, callerID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.pendingConflict(ctx, team, user.ID, false); err != nil {
		return nil, err
	}

	invite := &models.TeamJoinRequest{TeamID: team.ID, UserID: user.ID, Type: models.JoinRequestTypeInvite}
	if err := s.joinRepo.Create(ctx, invite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyInvited
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	logger.WithContext(ctx).Infof("team %d invited user %d", team.ID, user.ID)
	invite.User = *user
	resp := toJoinRequestResponse(invite)
	return &resp, nil
}

// RespondInvitation accepts or declines an invitation addressed to the caller.
// The joined team is returned on accept and nil on decline.
func (s *TeamJoinService) RespondInvitation(ctx context.Context, callerID uint, req *InvitationAnswer) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	return s.resolve(ctx, req.TeamID, callerID, models.JoinRequestTypeInvite, *req.Accept)
}

// CancelInvitation withdraws an invitation the team sent
func (s *TeamJoinService) CancelInvitation(ctx context.Context, callerID uint, req *TeamUserRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationFailed(err)
	}

	if _, _, err := authorizeManager(ctx, s.teamRepo, req.TeamID, callerID); err != nil {
		return err
	}
	return s.remove(ctx, req.TeamID, req.UserID, models.JoinRequestTypeInvite)
}

// Request asks to join a team on behalf of the caller
func (s *TeamJoinService) Request(ctx context.Context, caller *models.User, req *TeamIDRequest) (*JoinRequestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	team, err := findTeam(ctx, s.teamRepo, req.TeamID)
	if err != nil {
		return nil, err
	}
	if err := s.pendingConflict(ctx, team, caller.ID, true); err != nil {
		return nil, err
	}

	request := &models.TeamJoinRequest{TeamID: team.ID, UserID: caller.ID, Type: models.JoinRequestTypeRequest}
	if err := s.joinRepo.Create(ctx, request); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCallerAlreadyRequested
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	logger.WithContext(ctx).Infof("user %d requested to join team %d", caller.ID, team.ID)
	request.User = *caller
	resp := toJoinRequestResponse(request)
	return &resp, nil
}

// RespondRequest accepts or rejects a user's request to join the team
func (s *TeamJoinService) RespondRequest(ctx context.Context, callerID uint, req *RequestAnswer) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, _, err := authorizeManager(ctx, s.teamRepo, req.TeamID, callerID); err != nil {
		return nil, err
	}
	return s.resolve(ctx, req.TeamID, req.UserID, models.JoinRequestTypeRequest, *req.Accept)
}

// CancelRequest withdraws the caller's own join request
func (s *TeamJoinService) CancelRequest(ctx context.Context, callerID uint, req *TeamIDRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationFailed(err)
	}
	return s.remove(ctx, req.TeamID, callerID, models.JoinRequestTypeRequest)
}

// ListInvitations returns the invitations addressed to the user
func (s *TeamJoinService) ListInvitations(ctx context.Context, userID uint) ([]InvitationResponse, error) {
	invitations, err := s.joinRepo.ListByUser(ctx, userID, models.JoinRequestTypeInvite)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	out := make([]InvitationResponse, 0, len(invitations))
	for i := range invitations {
		out = append(out, toInvitationResponse(&invitations[i]))
	}
	return out, nil
}

// ListRequests returns every pending invitation and request of a team the caller manages
func (s *TeamJoinService) ListRequests(ctx context.Context, callerID, teamID uint) ([]JoinRequestResponse, error) {
	if teamID == 0 {
		return nil, apperrors.NewValidationError("team_id", "is required")
	}
	if _, _, err := authorizeManager(ctx, s.teamRepo, teamID, callerID); err != nil {
		return nil, err
	}

	requests, err := s.joinRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	out := make([]JoinRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, toJoinRequestResponse(&requests[i]))
	}
	return out, nil
}

func (s *TeamJoinService) resolve(ctx context.Context, teamID, userID uint, kind models.JoinRequestType, accept bool) (*TeamResponse, error) {
	if !accept {
		return nil, s.remove(ctx, teamID, userID, kind)
	}

	if err := s.joinRepo.Accept(ctx, teamID, userID, kind); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, notFoundFor(kind)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrTeamMemberExists
		}
		return nil, fmt.Errorf("failed to accept %s: %w", kind, err)
	}
	logger.WithContext(ctx).Infof("user %d joined team %d by %s", userID, teamID, kind)

	team, err := findTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	resp := toTeamResponse(team)
	return &resp, nil
}

func (s *TeamJoinService) remove(ctx context.Context, teamID, userID uint, kind models.JoinRequestType) error {
	if err := s.joinRepo.Delete(ctx, teamID, userID, kind); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundFor(kind)
		}
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	logger.WithContext(ctx).Infof("removed %s of user %d for team %d", kind, userID, teamID)
	return nil
}

func notFoundFor(kind models.JoinRequestType) error {
	if kind == models.JoinRequestTypeInvite {
		return apperrors.ErrInvitationNotFound
	}
	return apperrors.ErrJoinRequestNotFound
}
