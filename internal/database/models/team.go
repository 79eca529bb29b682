package models

import (
	"time"
)

// Team represents a group of users competing together
type Team struct {
	BaseModel
	Name      string  `json:"name" gorm:"size:48;not null" validate:"required,min=1,max=48"`
	AvatarURL *string `json:"avatar_url,omitempty" gorm:"size:256" validate:"omitempty,url,max=256"`

	// Relationships
	Members []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// TeamMember binds a user to a team with a role
type TeamMember struct {
	TeamID   uint     `json:"team_id" gorm:"primaryKey;autoIncrement:false"`
	MemberID uint     `json:"member_id" gorm:"primaryKey;autoIncrement:false"`
	Role     TeamRole `json:"role" gorm:"type:varchar(16);not null;default:'member'"`

	User User `json:"user" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}

// TeamJoinRequest is a pending invitation (team to user) or request (user to team)
type TeamJoinRequest struct {
	TeamID    uint            `json:"team_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint            `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Type      JoinRequestType `json:"type" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:now()"`

	Team Team `json:"team" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TeamJoinRequest
func (TeamJoinRequest) TableName() string {
	return "team_join_requests"
}
