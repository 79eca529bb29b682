package repository

import (
	"context"
	"errors"

	"powercup-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// ErrConcurrentUpdate is returned by guarded updates when the row no longer matches the expected state
var ErrConcurrentUpdate = errors.New("row was modified concurrently")

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// AdminRepositoryInterface defines the interface for administrator lookups
type AdminRepositoryInterface interface {
	Create(ctx context.Context, userID uint) error
	IsAdmin(ctx context.Context, userID uint) (bool, error)
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	CreateWithOwner(ctx context.Context, team *models.Team, ownerID uint, inviteIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	GetByMemberID(ctx context.Context, userID uint) ([]models.Team, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// TeamMemberRepositoryInterface defines the interface for team membership operations
type TeamMemberRepositoryInterface interface {
	Get(ctx context.Context, teamID, userID uint) (*models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember) error
	UpdateRole(ctx context.Context, teamID, userID uint, role models.TeamRole) error
	Delete(ctx context.Context, teamID, userID uint) error
}

// TeamJoinRequestRepositoryInterface defines the interface for pending invitations and join requests
type TeamJoinRequestRepositoryInterface interface {
	Get(ctx context.Context, teamID, userID uint) (*models.TeamJoinRequest, error)
	Create(ctx context.Context, request *models.TeamJoinRequest) error
	Delete(ctx context.Context, teamID, userID uint, kind models.JoinRequestType) error
	Accept(ctx context.Context, teamID, userID uint, kind models.JoinRequestType) error
	ListByUser(ctx context.Context, userID uint, kind models.JoinRequestType) ([]models.TeamJoinRequest, error)
	ListByTeam(ctx context.Context, teamID uint) ([]models.TeamJoinRequest, error)
}

// MatchRepositoryInterface defines the interface for match repository operations
type MatchRepositoryInterface interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id uint) (*models.Match, error)
	GetAll(ctx context.Context) ([]models.Match, error)
	UpdateStatus(ctx context.Context, id uint, from models.MatchStatus, updates map[string]interface{}) error
}

// GameRepositoryInterface defines the interface for game repository operations
type GameRepositoryInterface interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uint) (*models.Game, error)
	GetAll(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	ExistsByShortName(ctx context.Context, shortName string, excludeID uint) (bool, error)
}

// TournamentRepositoryInterface defines the interface for tournament repository operations
type TournamentRepositoryInterface interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id uint) (*models.Tournament, error)
	GetAll(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, id uint, expected models.TournamentStatus, updates map[string]interface{}) error
	GetMember(ctx context.Context, tournamentID, teamID uint) (*models.TournamentMember, error)
	CreateMember(ctx context.Context, member *models.TournamentMember) error
	UpdateMemberStatus(ctx context.Context, tournamentID, teamID uint, status models.TournamentMemberStatus) error
}
