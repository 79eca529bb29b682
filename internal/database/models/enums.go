package models

// TeamRole defines the role a user holds inside a team
type TeamRole string

const (
	TeamRoleOwner    TeamRole = "owner"
	TeamRoleAdmin    TeamRole = "admin"
	TeamRoleMember   TeamRole = "member"
	TeamRoleReserved TeamRole = "reserved"
)

// IsValid checks if the TeamRole is valid
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember, TeamRoleReserved:
		return true
	}
	return false
}

// IsManager reports whether the role may manage memberships and requests
func (r TeamRole) IsManager() bool {
	return r == TeamRoleOwner || r == TeamRoleAdmin
}

// JoinRequestType distinguishes invitations sent by a team from requests sent by a user
type JoinRequestType string

const (
	JoinRequestTypeInvite  JoinRequestType = "invite"
	JoinRequestTypeRequest JoinRequestType = "request"
)

// IsValid checks if the JoinRequestType is valid
func (t JoinRequestType) IsValid() bool {
	switch t {
	case JoinRequestTypeInvite, JoinRequestTypeRequest:
		return true
	}
	return false
}

// MatchType defines the kind of match
type MatchType string

const (
	MatchTypeCompetitive MatchType = "competitive"
	MatchTypeBattleRoyal MatchType = "battle_royal"
)

// IsValid checks if the MatchType is valid
func (t MatchType) IsValid() bool {
	switch t {
	case MatchTypeCompetitive, MatchTypeBattleRoyal:
		return true
	}
	return false
}

// MatchStatus defines the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusPreparing  MatchStatus = "preparing"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

// IsValid checks if the MatchStatus is valid
func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusPreparing, MatchStatusInProgress, MatchStatusFinished, MatchStatusCancelled:
		return true
	}
	return false
}

// TournamentStatus defines the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentStatusPending   TournamentStatus = "pending"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusFinished  TournamentStatus = "finished"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// IsValid checks if the TournamentStatus is valid
func (s TournamentStatus) IsValid() bool {
	switch s {
	case TournamentStatusPending, TournamentStatusActive, TournamentStatusFinished, TournamentStatusCancelled:
		return true
	}
	return false
}

// TournamentMemberStatus defines the state of a team's participation in a tournament
type TournamentMemberStatus string

const (
	TournamentMemberStatusPending  TournamentMemberStatus = "pending"
	TournamentMemberStatusAccepted TournamentMemberStatus = "accepted"
	TournamentMemberStatusRejected TournamentMemberStatus = "rejected"
)

// IsValid checks if the TournamentMemberStatus is valid
func (s TournamentMemberStatus) IsValid() bool {
	switch s {
	case TournamentMemberStatusPending, TournamentMemberStatusAccepted, TournamentMemberStatusRejected:
		return true
	}
	return false
}
