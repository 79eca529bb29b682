package service

import (
	"context"

	"powercup-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error)
	Authenticate(ctx context.Context, name, password string) (*models.User, error)
	AuthenticateAdmin(ctx context.Context, name, password string) (*models.User, error)
	GetUser(ctx context.Context, query UserQuery, viewerID uint) (*UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	Me(user *models.User) *UserResponse
	GetTeams(ctx context.Context, userID uint) ([]TeamResponse, error)
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	GetTeam(ctx context.Context, query TeamQuery, viewerID uint) (*TeamResponse, error)
	GetAll(ctx context.Context) ([]TeamResponse, error)
	Create(ctx context.Context, callerID uint, req *CreateTeamRequest) (*TeamResponse, error)
	Update(ctx context.Context, callerID uint, req *UpdateTeamRequest) (*TeamResponse, error)
	Delete(ctx context.Context, callerID uint, req *TeamIDRequest) error
	AddMember(ctx context.Context, callerID uint, req *TeamMemberRequest) (*TeamMemberResponse, error)
	ChangeRole(ctx context.Context, callerID uint, req *TeamMemberRequest) (*TeamMemberResponse, error)
	RemoveMember(ctx context.Context, callerID uint, req *TeamMemberRequest) error
}

// TeamJoinServiceInterface defines the interface for invitations and join requests
type TeamJoinServiceInterface interface {
	Invite(ctx context.Context, callerID uint, req *TeamUserRequest) (*JoinRequestResponse, error)
	RespondInvitation(ctx context.Context, callerID uint, req *InvitationAnswer) (*TeamResponse, error)
	CancelInvitation(ctx context.Context, callerID uint, req *TeamUserRequest) error
	Request(ctx context.Context, caller *models.User, req *TeamIDRequest) (*JoinRequestResponse, error)
	RespondRequest(ctx context.Context, callerID uint, req *RequestAnswer) (*TeamResponse, error)
	CancelRequest(ctx context.Context, callerID uint, req *TeamIDRequest) error
	ListInvitations(ctx context.Context, userID uint) ([]InvitationResponse, error)
	ListRequests(ctx context.Context, callerID, teamID uint) ([]JoinRequestResponse, error)
}

// MatchServiceInterface defines the interface for match service
type MatchServiceInterface interface {
	Create(ctx context.Context, req *CreateMatchRequest) (*MatchResponse, error)
	Get(ctx context.Context, id uint) (*MatchResponse, error)
	GetAll(ctx context.Context) ([]MatchResponse, error)
	Edit(ctx context.Context, req *EditMatchRequest) (*MatchResponse, error)
}

// GameServiceInterface defines the interface for game service
type GameServiceInterface interface {
	Get(ctx context.Context, id uint) (*GameResponse, error)
	GetAll(ctx context.Context) ([]GameResponse, error)
	Create(ctx context.Context, req *CreateGameRequest) (*GameResponse, error)
	Update(ctx context.Context, req *UpdateGameRequest) (*GameResponse, error)
}

// TournamentServiceInterface defines the interface for tournament service
type TournamentServiceInterface interface {
	Get(ctx context.Context, id uint) (*TournamentResponse, error)
	GetAll(ctx context.Context) ([]TournamentResponse, error)
	Create(ctx context.Context, req *CreateTournamentRequest, poster []byte) (*TournamentResponse, error)
	Update(ctx context.Context, req *UpdateTournamentRequest) (*TournamentResponse, error)
	Join(ctx context.Context, callerID uint, req *TournamentTeamRequest) error
	SetMemberStatus(ctx context.Context, req *TournamentMemberStatusRequest) error
}

// PosterStorage stores tournament posters in object storage
type PosterStorage interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	_ UserServiceInterface       = (*UserService)(nil)
	_ TeamServiceInterface       = (*TeamService)(nil)
	_ TeamJoinServiceInterface   = (*TeamJoinService)(nil)
	_ MatchServiceInterface      = (*MatchService)(nil)
	_ GameServiceInterface       = (*GameService)(nil)
	_ TournamentServiceInterface = (*TournamentService)(nil)
)
