package models

import (
	"time"
)

// Game is the discipline a tournament is played in
type Game struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"size:64;not null" validate:"required,min=1,max=64"`
	ShortName string `json:"short_name" gorm:"size:64;not null" validate:"required,min=1,max=64"`
}

// TableName returns the table name for Game
func (Game) TableName() string {
	return "games"
}

// Tournament represents a competition for a game that teams apply to
type Tournament struct {
	BaseModel
	Name        string           `json:"name" gorm:"size:128;not null"`
	Description *string          `json:"description" gorm:"size:512"`
	PosterURL   *string          `json:"poster_url" gorm:"size:256"`
	Status      TournamentStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	GameID      uint             `json:"game_id" gorm:"not null;index"`

	// Relationships
	Game    Game               `json:"game" gorm:"foreignKey:GameID;constraint:OnDelete:RESTRICT"`
	Members []TournamentMember `json:"members,omitempty" gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Tournament
func (Tournament) TableName() string {
	return "tournaments"
}

// TournamentMember tracks a team's participation in a tournament
type TournamentMember struct {
	TournamentID uint                   `json:"tournament_id" gorm:"primaryKey;autoIncrement:false"`
	TeamID       uint                   `json:"team_id" gorm:"primaryKey;autoIncrement:false"`
	Status       TournamentMemberStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt    time.Time              `json:"created_at" gorm:"not null;default:now()"`

	Team Team `json:"team" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TournamentMember
func (TournamentMember) TableName() string {
	return "tournament_members"
}
