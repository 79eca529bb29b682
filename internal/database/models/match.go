package models

import (
	"time"
)

// Match represents a game played between teams
type Match struct {
	BaseModel
	Type         MatchType   `json:"type" gorm:"type:varchar(16);not null"`
	Status       MatchStatus `json:"status" gorm:"type:varchar(16);not null;default:'preparing'"`
	WinnerTeamID *uint       `json:"team_winner_id" gorm:"column:team_winner_id"`
	StartedAt    *time.Time  `json:"started_at"`
	FinishedAt   *time.Time  `json:"finished_at"`

	// Relationships
	Winner  *Team         `json:"winner,omitempty" gorm:"foreignKey:WinnerTeamID;constraint:OnDelete:SET NULL"`
	Members []MatchMember `json:"members,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Match
func (Match) TableName() string {
	return "matches"
}

// HasTeam reports whether the team participates in the match
func (m *Match) HasTeam(teamID uint) bool {
	for _, member := range m.Members {
		if member.TeamID == teamID {
			return true
		}
	}
	return false
}

// MatchMember binds a participating team to a match
type MatchMember struct {
	MatchID uint `json:"match_id" gorm:"primaryKey;autoIncrement:false"`
	TeamID  uint `json:"team_id" gorm:"primaryKey;autoIncrement:false"`

	Team Team `json:"team" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for MatchMember
func (MatchMember) TableName() string {
	return "match_members"
}
