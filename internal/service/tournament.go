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

// TournamentService handles tournaments, their posters and team participation
type TournamentService struct {
	repo           repository.TournamentRepositoryInterface
	gameRepo       repository.GameRepositoryInterface
	teamRepo       repository.TeamRepositoryInterface
	posters        PosterStorage
	validator      *validator.Validate
	maxPosterBytes int64
	now            func() time.Time
}

// NewTournamentService creates a new tournament service
func NewTournamentService(
	repo repository.TournamentRepositoryInterface,
	gameRepo repository.GameRepositoryInterface,
	teamRepo repository.TeamRepositoryInterface,
	posters PosterStorage,
	validator *validator.Validate,
	maxPosterBytes int64,
) *TournamentService {
	return &TournamentService{
		repo:           repo,
		gameRepo:       gameRepo,
		teamRepo:       teamRepo,
		posters:        posters,
		validator:      validator,
		maxPosterBytes: maxPosterBytes,
		now:            time.Now,
	}
}

// CreateTournamentRequest holds the form fields of a new tournament
type CreateTournamentRequest struct {
	Name        string  `form:"name" json:"name" validate:"required,min=1,max=128"`
	Description *string `form:"description" json:"description" validate:"omitempty,max=512"`
	GameID      uint    `form:"game_id" json:"game_id" validate:"required"`
}

// UpdateTournamentRequest changes tournament details or moves it to another status
type UpdateTournamentRequest struct {
	TournamentID uint                     `json:"tournament_id" validate:"required" example:"1"`
	Name         *string                  `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Description  *string                  `json:"description,omitempty" validate:"omitempty,max=512"`
	Status       *models.TournamentStatus `json:"status,omitempty" example:"active"`
}

// TournamentTeamRequest identifies a team in a tournament
type TournamentTeamRequest struct {
	TournamentID uint `json:"tournament_id" validate:"required" example:"1"`
	TeamID       uint `json:"team_id" validate:"required" example:"1"`
}

// TournamentMemberStatusRequest sets the participation status of a team
type TournamentMemberStatusRequest struct {
	TournamentID uint                          `json:"tournament_id" validate:"required" example:"1"`
	TeamID       uint                          `json:"team_id" validate:"required" example:"1"`
	Status       models.TournamentMemberStatus `json:"status" validate:"required" example:"accepted"`
}

// tournamentTransitions lists the statuses each status may move to
var tournamentTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.TournamentStatusPending: {models.TournamentStatusActive, models.TournamentStatusCancelled},
	models.TournamentStatusActive:  {models.TournamentStatusFinished, models.TournamentStatusCancelled},
}

func (s *TournamentService) load(ctx context.Context, id uint) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

// Get returns a tournament with its game and participating teams
func (s *TournamentService) Get(ctx context.Context, id uint) (*TournamentResponse, error) {
	tournament, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTournamentResponse(tournament)
	return &resp, nil
}

// GetAll returns every tournament
func (s *TournamentService) GetAll(ctx context.Context) ([]TournamentResponse, error) {
	tournaments, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	out := make([]TournamentResponse, 0, len(tournaments))
	for i := range tournaments {
		out = append(out, toTournamentResponse(&tournaments[i]))
	}
	return out, nil
}

// Create uploads the poster and stores the tournament. The uploaded object is
// removed again when the tournament cannot be stored.
func (s *TournamentService) Create(ctx context.Context, req *CreateTournamentRequest, posterData []byte) (*TournamentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, err := s.gameRepo.GetByID(ctx, req.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	poster, err := inspectPoster(posterData, s.maxPosterBytes)
	if err != nil {
		return nil, err
	}

	key := posterObjectName(s.now(), poster.Extension)
	url, err := s.posters.Upload(ctx, key, poster.Data, poster.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload poster: %w", err)
	}

	tournament := &models.Tournament{
		Name:        req.Name,
		Description: req.Description,
		PosterURL:   &url,
		Status:      models.TournamentStatusPending,
		GameID:      req.GameID,
	}
	if err := s.repo.Create(ctx, tournament); err != nil {
		if delErr := s.posters.Delete(ctx, key); delErr != nil {
			logger.WithContext(ctx).Errorf("failed to remove orphaned poster %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	logger.WithContext(ctx).Infof("created tournament %d (%s) with poster %s", tournament.ID, tournament.Name, key)
	return s.Get(ctx, tournament.ID)
}

// Update changes the name, description or status of a tournament
func (s *TournamentService) Update(ctx context.Context, req *UpdateTournamentRequest) (*TournamentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	tournament, err := s.load(ctx, req.TournamentID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	var expected models.TournamentStatus
	if req.Status != nil {
		if err := checkTournamentTransition(tournament.Status, *req.Status); err != nil {
			return nil, err
		}
		updates["status"] = *req.Status
		expected = tournament.Status
	}

	if len(updates) == 0 {
		resp := toTournamentResponse(tournament)
		return &resp, nil
	}

	if err := s.repo.Update(ctx, tournament.ID, expected, updates); err != nil {
		switch {
		case errors.Is(err, repository.ErrConcurrentUpdate):
			return nil, apperrors.ErrTournamentStatusChanged
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}

	logger.WithContext(ctx).Infof("updated tournament %d", tournament.ID)
	return s.Get(ctx, tournament.ID)
}

func checkTournamentTransition(from, to models.TournamentStatus) error {
	if !to.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	if from == to {
		return apperrors.ErrSameTournamentStatus
	}
	for _, allowed := range tournamentTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperrors.NewValidationError("status", fmt.Sprintf("cannot change tournament status from %s to %s", from, to))
}

// Join applies a team to a pending tournament on behalf of one of its managers.
// A rejected team may apply again.
func (s *TournamentService) Join(ctx context.Context, callerID uint, req *TournamentTeamRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationFailed(err)
	}

	tournament, err := s.load(ctx, req.TournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != models.TournamentStatusPending {
		return apperrors.NewAuthorizationError(fmt.Sprintf("It is no longer possible to join a tournament with ID %d", tournament.ID))
	}

	team, err := findTeam(ctx, s.teamRepo, req.TeamID)
	if err != nil {
		return err
	}
	if role, ok := roleOf(team, callerID); !ok || !role.IsManager() {
		return apperrors.ErrTournamentApply
	}

	existing, err := s.repo.GetMember(ctx, tournament.ID, team.ID)
	switch {
	case err == nil:
		return s.reapply(ctx, existing)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to get tournament participation: %w", err)
	}

	member := &models.TournamentMember{
		TournamentID: tournament.ID,
		TeamID:       team.ID,
		Status:       models.TournamentMemberStatusPending,
	}
	if err := s.repo.CreateMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrTournamentMemberPending
		}
		return fmt.Errorf("failed to apply to tournament: %w", err)
	}

	logger.WithContext(ctx).Infof("team %d applied to tournament %d", team.ID, tournament.ID)
	return nil
}

func (s *TournamentService) reapply(ctx context.Context, existing *models.TournamentMember) error {
	switch existing.Status {
	case models.TournamentMemberStatusAccepted:
		return apperrors.ErrTournamentMemberAccepted
	case models.TournamentMemberStatusPending:
		return apperrors.ErrTournamentMemberPending
	}

	err := s.repo.UpdateMemberStatus(ctx, existing.TournamentID, existing.TeamID, models.TournamentMemberStatusPending)
	if err != nil {
		return fmt.Errorf("failed to reapply to tournament: %w", err)
	}
	logger.WithContext(ctx).Infof("team %d reapplied to tournament %d", existing.TeamID, existing.TournamentID)
	return nil
}

// SetMemberStatus accepts, rejects or resets a team's participation
func (s *TournamentService) SetMemberStatus(ctx context.Context, req *TournamentMemberStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationFailed(err)
	}
	if !req.Status.IsValid() {
		return apperrors.ErrInvalidStatus
	}

	if _, err := s.load(ctx, req.TournamentID); err != nil {
		return err
	}
	if _, err := findTeam(ctx, s.teamRepo, req.TeamID); err != nil {
		return err
	}

	if err := s.repo.UpdateMemberStatus(ctx, req.TournamentID, req.TeamID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotInTournament
		}
		return fmt.Errorf("failed to update tournament participation: %w", err)
	}

	logger.WithContext(ctx).Infof("team %d participation in tournament %d set to %s", req.TeamID, req.TournamentID, req.Status)
	return nil
}
