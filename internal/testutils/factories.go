package testutils

import (
	"fmt"
	"strings"

	"powercup-backend/internal/auth"
	"powercup-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the clear text password of every user built by UserFactory
const TestPassword = "secret123"

// uniqueSuffix keeps generated names unique across tests sharing one database
func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.New().String()[:8], "-", "")
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User whose password is TestPassword
func (f *UserFactory) Create() *models.User {
	hash, _ := auth.HashPasswordWithCost(TestPassword, bcrypt.MinCost)
	first, last := "John", "Doe"
	return &models.User{
		Name:      "user_" + uniqueSuffix(),
		FirstName: &first,
		LastName:  &last,
		Password:  string(hash),
	}
}

// WithName sets a custom name for the user
func (f *UserFactory) WithName(name string) *models.User {
	user := f.Create()
	user.Name = name
	return user
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team without members
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		Name: "team_" + uniqueSuffix(),
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// WithOwner creates a team whose only member is the given owner
func (f *TeamFactory) WithOwner(ownerID uint) *models.Team {
	team := f.Create()
	team.Members = []models.TeamMember{{MemberID: ownerID, Role: models.TeamRoleOwner}}
	return team
}

// GameFactory provides methods to create test Game data
type GameFactory struct{}

// NewGameFactory creates a new GameFactory
func NewGameFactory() *GameFactory {
	return &GameFactory{}
}

// Create creates a test Game
func (f *GameFactory) Create() *models.Game {
	suffix := uniqueSuffix()
	return &models.Game{
		Name:      "Game " + suffix,
		ShortName: "g" + suffix,
	}
}

// MatchFactory provides methods to create test Match data
type MatchFactory struct{}

// NewMatchFactory creates a new MatchFactory
func NewMatchFactory() *MatchFactory {
	return &MatchFactory{}
}

// Create creates a preparing competitive match between two teams
func (f *MatchFactory) Create(firstTeamID, secondTeamID uint) *models.Match {
	return &models.Match{
		Type:   models.MatchTypeCompetitive,
		Status: models.MatchStatusPreparing,
		Members: []models.MatchMember{
			{TeamID: firstTeamID},
			{TeamID: secondTeamID},
		},
	}
}

// WithStatus creates a match in the given status
func (f *MatchFactory) WithStatus(firstTeamID, secondTeamID uint, status models.MatchStatus) *models.Match {
	match := f.Create(firstTeamID, secondTeamID)
	match.Status = status
	return match
}

// TournamentFactory provides methods to create test Tournament data
type TournamentFactory struct{}

// NewTournamentFactory creates a new TournamentFactory
func NewTournamentFactory() *TournamentFactory {
	return &TournamentFactory{}
}

// Create creates a pending tournament for the given game
func (f *TournamentFactory) Create(gameID uint) *models.Tournament {
	description := "A test tournament"
	poster := fmt.Sprintf("https://powercup-test.s3.eu-central-1.amazonaws.com/TO_%s_poster.png", uniqueSuffix())
	return &models.Tournament{
		Name:        "Cup " + uniqueSuffix(),
		Description: &description,
		PosterURL:   &poster,
		Status:      models.TournamentStatusPending,
		GameID:      gameID,
	}
}

// WithStatus creates a tournament in the given status
func (f *TournamentFactory) WithStatus(gameID uint, status models.TournamentStatus) *models.Tournament {
	tournament := f.Create(gameID)
	tournament.Status = status
	return tournament
}

// FactorySet provides access to all factories
type FactorySet struct {
	User       *UserFactory
	Team       *TeamFactory
	Game       *GameFactory
	Match      *MatchFactory
	Tournament *TournamentFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:       NewUserFactory(),
		Team:       NewTeamFactory(),
		Game:       NewGameFactory(),
		Match:      NewMatchFactory(),
		Tournament: NewTournamentFactory(),
	}
}
