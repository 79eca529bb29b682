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

// TeamService handles business logic for teams and their memberships
type TeamService struct {
	teamRepo   repository.TeamRepositoryInterface
	memberRepo repository.TeamMemberRepositoryInterface
	joinRepo   repository.TeamJoinRequestRepositoryInterface
	userRepo   repository.UserRepositoryInterface
	validator  *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo repository.TeamRepositoryInterface,
	memberRepo repository.TeamMemberRepositoryInterface,
	joinRepo repository.TeamJoinRequestRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	validator *validator.Validate,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		joinRepo:   joinRepo,
		userRepo:   userRepo,
		validator:  validator,
	}
}

// TeamQuery selects a team by ID or by name
type TeamQuery struct {
	ID   uint   `form:"id"`
	Name string `form:"name"`
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=48" example:"Navi"`
	MembersIDs []uint `json:"members_ids,omitempty"`
}

// UpdateTeamRequest represents the request to rename a team or change its avatar
type UpdateTeamRequest struct {
	TeamID    uint    `json:"team_id" validate:"required" example:"1"`
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=48" example:"Navi"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=256"`
}

// TeamIDRequest identifies a team in a request body
type TeamIDRequest struct {
	TeamID uint `json:"team_id" validate:"required" example:"1"`
}

// TeamMemberRequest identifies a membership and optionally the role to set
type TeamMemberRequest struct {
	TeamID uint            `json:"team_id" validate:"required" example:"1"`
	UserID uint            `json:"user_id" validate:"required" example:"2"`
	Role   models.TeamRole `json:"role,omitempty" example:"member"`
}

// findTeam loads a team or returns ErrTeamNotFound
func findTeam(ctx context.Context, repo repository.TeamRepositoryInterface, teamID uint) (*models.Team, error) {
	team, err := repo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// roleOf returns the role the user holds in the team
func roleOf(team *models.Team, userID uint) (models.TeamRole, bool) {
	for _, member := range team.Members {
		if member.MemberID == userID {
			return member.Role, true
		}
	}
	return "", false
}

// authorizeManager loads the team and returns the caller's role if it is owner or admin
func authorizeManager(ctx context.Context, repo repository.TeamRepositoryInterface, teamID, callerID uint) (*models.Team, models.TeamRole, error) {
	team, err := findTeam(ctx, repo, teamID)
	if err != nil {
		return nil, "", err
	}
	role, ok := roleOf(team, callerID)
	if !ok || !role.IsManager() {
		return nil, "", apperrors.ErrTeamManagerRequired
	}
	return team, role, nil
}

// GetTeam returns a team by ID or name. Pending join requests are attached when the viewer manages the team.
func (s *TeamService) GetTeam(ctx context.Context, query TeamQuery, viewerID uint) (*TeamResponse, error) {
	var (
		team *models.Team
		err  error
	)
	switch {
	case query.ID != 0:
		team, err = s.teamRepo.GetByID(ctx, query.ID)
	case query.Name != "":
		team, err = s.teamRepo.GetByName(ctx, query.Name)
	default:
		return nil, apperrors.ErrIDOrNameRequired
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	resp := toTeamResponse(team)
	if role, ok := roleOf(team, viewerID); ok && role.IsManager() {
		requests, err := s.joinRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list join requests: %w", err)
		}
		resp.JoinRequests = make([]JoinRequestResponse, 0, len(requests))
		for i := range requests {
			resp.JoinRequests = append(resp.JoinRequests, toJoinRequestResponse(&requests[i]))
		}
	}
	return &resp, nil
}

// GetAll returns every team with its members
func (s *TeamService) GetAll(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return toTeamResponses(teams), nil
}

// Create creates a team owned by the caller and invites the listed users
func (s *TeamService) Create(ctx context.Context, callerID uint, req *CreateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	exists, err := s.teamRepo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if exists {
		return nil, apperrors.ErrTeamExists
	}

	inviteIDs := make([]uint, 0, len(req.MembersIDs))
	seen := map[uint]bool{callerID: true}
	for _, userID := range req.MembersIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		inviteIDs = append(inviteIDs, userID)
	}

	team := &models.Team{Name: req.Name}
	if err := s.teamRepo.CreateWithOwner(ctx, team, callerID, inviteIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTeamExists
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	logger.WithContext(ctx).WithField("invites", len(inviteIDs)).Infof("created team %d (%s)", team.ID, team.Name)

	created, err := findTeam(ctx, s.teamRepo, team.ID)
	if err != nil {
		return nil, err
	}
	resp := toTeamResponse(created)
	return &resp, nil
}

// Update renames a team or changes its avatar
func (s *TeamService) Update(ctx context.Context, callerID uint, req *UpdateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	team, _, err := authorizeManager(ctx, s.teamRepo, req.TeamID, callerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != team.Name {
		exists, err := s.teamRepo.ExistsByName(ctx, *req.Name, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check team name: %w", err)
		}
		if exists {
			return nil, apperrors.ErrTeamExists
		}
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) > 0 {
		if err := s.teamRepo.Update(ctx, team.ID, updates); err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return nil, apperrors.ErrTeamNotFound
			case errors.Is(err, gorm.ErrDuplicatedKey):
				return nil, apperrors.ErrTeamExists
			}
			return nil, fmt.Errorf("failed to update team: %w", err)
		}
		if team, err = findTeam(ctx, s.teamRepo, team.ID); err != nil {
			return nil, err
		}
	}

	resp := toTeamResponse(team)
	return &resp, nil
}

// Delete removes a team; only its owner may do so
func (s *TeamService) Delete(ctx context.Context, callerID uint, req *TeamIDRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationFailed(err)
	}

	team, err := findTeam(ctx, s.teamRepo, req.TeamID)
	if err != nil {
		return err
	}
	if role, ok := roleOf(team, callerID); !ok || role != models.TeamRoleOwner {
		return apperrors.ErrTeamOwnerRequired
	}

	if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	logger.WithContext(ctx).Infof("deleted team %d", team.ID)
	return nil
}

// AddMember adds a user to the team directly with the given role
func (s *TeamService) AddMember(ctx context.Context, callerID uint, req *TeamMemberRequest) (*TeamMemberResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	if req.Role == "" {
		req.Role = models.TeamRoleMember
	}

	team, err := findTeam(ctx, s.teamRepo, req.TeamID)
	if err != nil {
		return nil, err
	}
	callerRole, ok := roleOf(team, callerID)
	if !ok || !callerRole.IsManager() {
		return nil, apperrors.ErrAddMemberForbidden
	}
	if req.Role.IsManager() && callerRole != models.TeamRoleOwner {
		return nil, apperrors.ErrOwnerGrantsAdmin
	}
	if req.Role == models.TeamRoleOwner {
		return nil, apperrors.ErrSecondOwner
	}
	if !req.Role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if _, ok := roleOf(team, user.ID); ok {
		return nil, apperrors.ErrTeamMemberExists
	}

	member := &models.TeamMember{TeamID: team.ID, MemberID: user.ID, Role: req.Role}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTeamMemberExists
		}
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	logger.WithContext(ctx).Infof("added user %d to team %d as %s", user.ID, team.ID, req.Role)
	return &TeamMemberResponse{User: toUserResponse(user, false), Role: req.Role}, nil
}

// ChangeRole changes the role of a member. Granting or revoking admin requires the owner.
func (s *TeamService) ChangeRole(ctx context.Context, callerID uint, req *TeamMemberRequest) (*TeamMemberResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	team, callerRole, err := authorizeManager(ctx, s.teamRepo, req.TeamID, callerID)
	if err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	var target *models.TeamMember
	for i := range team.Members {
		if team.Members[i].MemberID == req.UserID {
			target = &team.Members[i]
			break
		}
	}
	if target == nil {
		return nil, apperrors.ErrTeamMemberNotFound
	}

	switch {
	case req.Role == models.TeamRoleOwner:
		return nil, apperrors.ErrSecondOwner
	case target.Role == models.TeamRoleOwner:
		return nil, apperrors.ErrOwnerRoleImmutable
	case (req.Role == models.TeamRoleAdmin || target.Role == models.TeamRoleAdmin) && callerRole != models.TeamRoleOwner:
		return nil, apperrors.ErrOwnerGrantsAdmin
	}

	if target.Role != req.Role {
		if err := s.memberRepo.UpdateRole(ctx, team.ID, target.MemberID, req.Role); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTeamMemberNotFound
			}
			return nil, fmt.Errorf("failed to change role: %w", err)
		}
		logger.WithContext(ctx).Infof("changed role of user %d in team %d from %s to %s", target.MemberID, team.ID, target.Role, req.Role)
	}

	return &TeamMemberResponse{User: toUserResponse(&target.User, false), Role: req.Role}, nil
}

// RemoveMember removes a member from the team. Any member except the owner may remove themself.
func (s *TeamService) RemoveMember(ctx context.Context, callerID uint, req *TeamMemberRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationFailed(err)
	}

	team, err := findTeam(ctx, s.teamRepo, req.TeamID)
	if err != nil {
		return err
	}
	var callerRole models.TeamRole
	if req.UserID != callerID {
		role, ok := roleOf(team, callerID)
		if !ok || !role.IsManager() {
			return apperrors.ErrTeamManagerRequired
		}
		callerRole = role
	}

	targetRole, ok := roleOf(team, req.UserID)
	if !ok {
		return apperrors.ErrTeamMemberNotFound
	}
	if targetRole == models.TeamRoleOwner {
		return apperrors.ErrOwnerCannotBeRemoved
	}
	if req.UserID != callerID && targetRole == models.TeamRoleAdmin && callerRole != models.TeamRoleOwner {
		return apperrors.ErrTeamOwnerRequired
	}

	if err := s.memberRepo.Delete(ctx, team.ID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	logger.WithContext(ctx).Infof("removed user %d from team %d", req.UserID, team.ID)
	return nil
}
