package service

import (
	"context"
	"errors"
	"fmt"

	"powercup-backend/internal/auth"
	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"
	"powercup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// UserService handles accounts: registration, credential checks and profile lookups
type UserService struct {
	repo      repository.UserRepositoryInterface
	adminRepo repository.AdminRepositoryInterface
	teamRepo  repository.TeamRepositoryInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, adminRepo repository.AdminRepositoryInterface, teamRepo repository.TeamRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		adminRepo: adminRepo,
		teamRepo:  teamRepo,
		validator: validator,
	}
}

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=48,username" example:"john_doe"`
	Password  string  `json:"password" validate:"required,min=1,max=128" example:"secret"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=48" example:"John"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=48" example:"Doe"`
}

// UserQuery selects a user by ID or by name
type UserQuery struct {
	ID   uint   `form:"id"`
	Name string `form:"name"`
}

// Register creates a new account
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUserExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      req.Name,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithContext(ctx).Infof("registered user %d (%s)", user.ID, user.Name)
	resp := toUserResponse(user, true)
	return &resp, nil
}

// Authenticate checks a name/password pair; the name is matched ignoring case
func (s *UserService) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateAdmin checks the credentials and requires administrator rights
func (s *UserService) AuthenticateAdmin(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.Authenticate(ctx, name, password)
	if err != nil {
		return nil, err
	}
	isAdmin, err := s.adminRepo.IsAdmin(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check administrator: %w", err)
	}
	if !isAdmin {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser looks a user up by ID or name. Personal data is included only when the viewer is that user.
func (s *UserService) GetUser(ctx context.Context, query UserQuery, viewerID uint) (*UserResponse, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case query.ID != 0:
		user, err = s.repo.GetByID(ctx, query.ID)
	case query.Name != "":
		user, err = s.repo.GetByName(ctx, query.Name)
	default:
		return nil, apperrors.ErrIDOrNameRequired
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := toUserResponse(user, viewerID != 0 && viewerID == user.ID)
	return &resp, nil
}

// GetAll returns every user without personal data
func (s *UserService) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i], false))
	}
	return out, nil
}

// Me returns the caller's own profile
func (s *UserService) Me(user *models.User) *UserResponse {
	resp := toUserResponse(user, true)
	return &resp
}

// GetTeams returns the teams the user belongs to
func (s *UserService) GetTeams(ctx context.Context, userID uint) ([]TeamResponse, error) {
	teams, err := s.teamRepo.GetByMemberID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return toTeamResponses(teams), nil
}
