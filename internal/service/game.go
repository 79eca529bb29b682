package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"
	"powercup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// GameService manages the catalog of games tournaments are played in
type GameService struct {
	repo      repository.GameRepositoryInterface
	validator *validator.Validate
}

// NewGameService creates a new game service
func NewGameService(repo repository.GameRepositoryInterface, validator *validator.Validate) *GameService {
	return &GameService{repo: repo, validator: validator}
}

// CreateGameRequest represents the request to add a game
type CreateGameRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=64" example:"Counter-Strike 2"`
	ShortName string `json:"short_name" validate:"required,min=1,max=64" example:"cs2"`
}

// UpdateGameRequest represents the request to rename a game
type UpdateGameRequest struct {
	ID        uint   `json:"id" validate:"required" example:"1"`
	Name      string `json:"name" validate:"required,min=1,max=64" example:"Counter-Strike 2"`
	ShortName string `json:"short_name" validate:"required,min=1,max=64" example:"cs2"`
}

// Get returns a game by ID
func (s *GameService) Get(ctx context.Context, id uint) (*GameResponse, error) {
	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	resp := toGameResponse(game)
	return &resp, nil
}

// GetAll returns every game
func (s *GameService) GetAll(ctx context.Context) ([]GameResponse, error) {
	games, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	out := make([]GameResponse, 0, len(games))
	for i := range games {
		out = append(out, toGameResponse(&games[i]))
	}
	return out, nil
}

// Create adds a game; both names must be unique ignoring case
func (s *GameService) Create(ctx context.Context, req *CreateGameRequest) (*GameResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	game := &models.Game{Name: strings.TrimSpace(req.Name), ShortName: strings.TrimSpace(req.ShortName)}
	if err := s.checkNames(ctx, game); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrGameNameExists
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	logger.WithContext(ctx).Infof("created game %d (%s)", game.ID, game.ShortName)
	resp := toGameResponse(game)
	return &resp, nil
}

// Update renames a game
func (s *GameService) Update(ctx context.Context, req *UpdateGameRequest) (*GameResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, err := s.Get(ctx, req.ID); err != nil {
		return nil, err
	}

	game := &models.Game{ID: req.ID, Name: strings.TrimSpace(req.Name), ShortName: strings.TrimSpace(req.ShortName)}
	if err := s.checkNames(ctx, game); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, game); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrGameNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrGameNameExists
		}
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	resp := toGameResponse(game)
	return &resp, nil
}

func (s *GameService) checkNames(ctx context.Context, game *models.Game) error {
	exists, err := s.repo.ExistsByName(ctx, game.Name, game.ID)
	if err != nil {
		return fmt.Errorf("failed to check game name: %w", err)
	}
	if exists {
		return apperrors.ErrGameNameExists
	}

	exists, err = s.repo.ExistsByShortName(ctx, game.ShortName, game.ID)
	if err != nil {
		return fmt.Errorf("failed to check game short name: %w", err)
	}
	if exists {
		return apperrors.ErrGameShortNameExists
	}
	return nil
}
