package service

import (
	"time"

	"powercup-backend/internal/database/models"
)

// PersonalData holds the profile fields only the user themself may see
type PersonalData struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UserResponse represents a user as returned by the API
type UserResponse struct {
	ID           uint          `json:"id" example:"1"`
	Name         string        `json:"name" example:"john_doe"`
	CreatedAt    time.Time     `json:"created_at"`
	PersonalData *PersonalData `json:"personal_data,omitempty"`
}

// TeamMemberResponse represents a membership inside a team
type TeamMemberResponse struct {
	User UserResponse    `json:"user"`
	Role models.TeamRole `json:"role" example:"member"`
}

// JoinRequestResponse represents a pending invitation or join request seen from the team
type JoinRequestResponse struct {
	TeamID    uint                   `json:"team_id"`
	User      UserResponse           `json:"user"`
	Type      models.JoinRequestType `json:"type" example:"invite"`
	CreatedAt time.Time              `json:"created_at"`
}

// InvitationResponse represents a pending invitation or request seen from the user
type InvitationResponse struct {
	Team      TeamSummary            `json:"team"`
	Type      models.JoinRequestType `json:"type" example:"invite"`
	CreatedAt time.Time              `json:"created_at"`
}

// TeamSummary represents a team without its members
type TeamSummary struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Navi"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamResponse represents a team with its members
type TeamResponse struct {
	TeamSummary
	Members      []TeamMemberResponse  `json:"members"`
	JoinRequests []JoinRequestResponse `json:"join_requests,omitempty"`
}

// MatchResponse represents a match with its participating teams
type MatchResponse struct {
	ID         uint               `json:"id" example:"1"`
	Type       models.MatchType   `json:"type" example:"competitive"`
	Status     models.MatchStatus `json:"status" example:"preparing"`
	WinnerID   *uint              `json:"team_winner_id"`
	Winner     *TeamSummary       `json:"winner"`
	CreatedAt  time.Time          `json:"created_at"`
	StartedAt  *time.Time         `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at"`
	Members    []TeamResponse     `json:"members"`
}

// GameResponse represents a game
type GameResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"Counter-Strike 2"`
	ShortName string `json:"short_name" example:"cs2"`
}

// TournamentTeamResponse represents a team's participation in a tournament
type TournamentTeamResponse struct {
	Team      TeamSummary                   `json:"team"`
	Status    models.TournamentMemberStatus `json:"status" example:"pending"`
	CreatedAt time.Time                     `json:"created_at"`
}

// TournamentResponse represents a tournament with its game and participants
type TournamentResponse struct {
	ID          uint                     `json:"id" example:"1"`
	Name        string                   `json:"name" example:"Spring Cup"`
	Description *string                  `json:"description"`
	PosterURL   *string                  `json:"poster_url"`
	Status      models.TournamentStatus  `json:"status" example:"pending"`
	CreatedAt   time.Time                `json:"created_at"`
	Game        GameResponse             `json:"game"`
	Teams       []TournamentTeamResponse `json:"teams"`
}

func toUserResponse(user *models.User, withPersonalData bool) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if withPersonalData {
		resp.PersonalData = &PersonalData{FirstName: user.FirstName, LastName: user.LastName}
	}
	return resp
}

func toTeamSummary(team *models.Team) TeamSummary {
	return TeamSummary{
		ID:        team.ID,
		Name:      team.Name,
		AvatarURL: team.AvatarURL,
		CreatedAt: team.CreatedAt,
	}
}

func toTeamResponse(team *models.Team) TeamResponse {
	members := make([]TeamMemberResponse, 0, len(team.Members))
	for i := range team.Members {
		members = append(members, TeamMemberResponse{
			User: toUserResponse(&team.Members[i].User, false),
			Role: team.Members[i].Role,
		})
	}
	return TeamResponse{TeamSummary: toTeamSummary(team), Members: members}
}

func toTeamResponses(teams []models.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, toTeamResponse(&teams[i]))
	}
	return out
}

func toJoinRequestResponse(request *models.TeamJoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		TeamID:    request.TeamID,
		User:      toUserResponse(&request.User, false),
		Type:      request.Type,
		CreatedAt: request.CreatedAt,
	}
}

func toInvitationResponse(request *models.TeamJoinRequest) InvitationResponse {
	return InvitationResponse{
		Team:      toTeamSummary(&request.Team),
		Type:      request.Type,
		CreatedAt: request.CreatedAt,
	}
}

func toMatchResponse(match *models.Match) MatchResponse {
	teams := make([]TeamResponse, 0, len(match.Members))
	for i := range match.Members {
		teams = append(teams, toTeamResponse(&match.Members[i].Team))
	}
	resp := MatchResponse{
		ID:         match.ID,
		Type:       match.Type,
		Status:     match.Status,
		WinnerID:   match.WinnerTeamID,
		CreatedAt:  match.CreatedAt,
		StartedAt:  match.StartedAt,
		FinishedAt: match.FinishedAt,
		Members:    teams,
	}
	if match.Winner != nil {
		winner := toTeamSummary(match.Winner)
		resp.Winner = &winner
	}
	return resp
}

func toGameResponse(game *models.Game) GameResponse {
	return GameResponse{ID: game.ID, Name: game.Name, ShortName: game.ShortName}
}

func toTournamentResponse(tournament *models.Tournament) TournamentResponse {
	teams := make([]TournamentTeamResponse, 0, len(tournament.Members))
	for i := range tournament.Members {
		member := &tournament.Members[i]
		teams = append(teams, TournamentTeamResponse{
			Team:      toTeamSummary(&member.Team),
			Status:    member.Status,
			CreatedAt: member.CreatedAt,
		})
	}
	return TournamentResponse{
		ID:          tournament.ID,
		Name:        tournament.Name,
		Description: tournament.Description,
		PosterURL:   tournament.PosterURL,
		Status:      tournament.Status,
		CreatedAt:   tournament.CreatedAt,
		Game:        toGameResponse(&tournament.Game),
		Teams:       teams,
	}
}
