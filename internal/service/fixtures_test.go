package service_test

import (
	"time"

	"powercup-backend/internal/database/models"
)

// Users 1, 2 and 3 hold owner, admin and member roles in team 10
const (
	ownerID  uint = 1
	adminID  uint = 2
	memberID uint = 3
	outsider uint = 9
	teamID   uint = 10
)

func newUser(id uint, name string) models.User {
	return models.User{BaseModel: models.BaseModel{ID: id, CreatedAt: time.Now()}, Name: name}
}

func sampleTeam() *models.Team {
	return &models.Team{
		BaseModel: models.BaseModel{ID: teamID, CreatedAt: time.Now()},
		Name:      "Navi",
		Members: []models.TeamMember{
			{TeamID: teamID, MemberID: ownerID, Role: models.TeamRoleOwner, User: newUser(ownerID, "owner")},
			{TeamID: teamID, MemberID: adminID, Role: models.TeamRoleAdmin, User: newUser(adminID, "admin")},
			{TeamID: teamID, MemberID: memberID, Role: models.TeamRoleMember, User: newUser(memberID, "member")},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
