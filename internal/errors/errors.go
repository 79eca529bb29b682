package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Message string // Client facing message, overrides the generated one
}

func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ConflictError represents a request that contradicts the current state of a resource
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound             = &NotFoundError{Entity: "User"}
	ErrTeamNotFound             = &NotFoundError{Entity: "Team"}
	ErrTeamMemberNotFound       = &NotFoundError{Entity: "Team member"}
	ErrInvitationNotFound       = &NotFoundError{Entity: "Invitation"}
	ErrJoinRequestNotFound      = &NotFoundError{Entity: "Join request"}
	ErrMatchNotFound            = &NotFoundError{Entity: "Match"}
	ErrGameNotFound             = &NotFoundError{Entity: "Game"}
	ErrTournamentNotFound       = &NotFoundError{Entity: "Tournament"}
	ErrTournamentMemberNotFound = &NotFoundError{Entity: "Tournament participation"}
)

// Already Exists Errors
var (
	ErrUserExists               = &AlreadyExistsError{Entity: "user", Message: "A user with this name already exists"}
	ErrTeamExists               = &AlreadyExistsError{Entity: "team", Message: "A team with this name already exists"}
	ErrTeamMemberExists         = &AlreadyExistsError{Entity: "team member", Message: "User is already a member of the team"}
	ErrAlreadyInvited           = &AlreadyExistsError{Entity: "invitation", Message: "User has already been invited to the team"}
	ErrAlreadyRequested         = &AlreadyExistsError{Entity: "join request", Message: "User has already requested to join the team"}
	ErrCallerAlreadyInvited     = &AlreadyExistsError{Entity: "invitation", Message: "You have already been invited to the team"}
	ErrCallerAlreadyRequested   = &AlreadyExistsError{Entity: "join request", Message: "You have already requested to join the team"}
	ErrCallerAlreadyMember      = &AlreadyExistsError{Entity: "team member", Message: "You are already a member of the team"}
	ErrGameNameExists           = &AlreadyExistsError{Entity: "game name", Message: "Name is used"}
	ErrGameShortNameExists      = &AlreadyExistsError{Entity: "game short name", Message: "Short name is used"}
	ErrTournamentMemberAccepted = &AlreadyExistsError{Entity: "tournament participation", Message: "The team is already participating in the tournament"}
	ErrTournamentMemberPending  = &AlreadyExistsError{Entity: "tournament application", Message: "The team has already applied to participate in the tournament"}
)

// State Conflict Errors
var (
	ErrSecondOwner             = &ConflictError{Message: "A team cannot have more than one owner"}
	ErrOwnerRoleImmutable      = &ConflictError{Message: "The role of the team owner cannot be changed"}
	ErrOwnerCannotBeRemoved    = &ConflictError{Message: "The team owner cannot be removed from the team"}
	ErrMatchStatusChanged      = &ConflictError{Message: "The match status was changed by another request"}
	ErrTournamentStatusChanged = &ConflictError{Message: "The tournament status was changed by another request"}
	ErrTeamNotInTournament     = &ConflictError{Message: "The team does not participate in the tournament"}
)

// Validation Errors
var (
	ErrIDOrNameRequired     = &ValidationError{Message: "An ID or name is required"}
	ErrInvalidRole          = &ValidationError{Field: "role", Message: "invalid team role"}
	ErrInvalidStatus        = &ValidationError{Field: "status", Message: "invalid status"}
	ErrSameStatus           = &ValidationError{Message: "The match already has this status"}
	ErrSameTournamentStatus = &ValidationError{Message: "The tournament already has this status"}
	ErrWinnerRequired       = &ValidationError{Message: "Winner id is required"}
	ErrSameTeams            = &ValidationError{Message: "A match requires two different teams"}
	ErrUnsupportedMatchType = &ValidationError{Field: "type", Message: "only competitive matches can be created"}
	ErrInvalidImage         = &ValidationError{Message: "Invalid image"}
	ErrInvalidImageFormat   = &ValidationError{Message: "Invalid image format. Allowed: PNG, JPG, JPEG, WEBP"}
	ErrPosterTooLarge       = &ValidationError{Field: "poster", Message: "file is too large"}
	ErrPosterRequired       = &ValidationError{Field: "poster", Message: "poster image is required"}
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "Wrong login or password"}
	ErrNotAuthenticated   = &AuthenticationError{Message: "Not authenticated"}
	ErrInvalidToken       = &AuthenticationError{Message: "Invalid or expired token"}
)

// Authorization Errors
var (
	ErrAdminRequired       = &AuthorizationError{Message: "Administrator privileges required"}
	ErrTeamManagerRequired = &AuthorizationError{Message: "Only the owner or an administrator of the team can do this"}
	ErrAddMemberForbidden  = &AuthorizationError{Message: "Only an administrator can add members to a team"}
	ErrTeamOwnerRequired   = &AuthorizationError{Message: "Only the team owner can perform this action"}
	ErrOwnerGrantsAdmin    = &AuthorizationError{Message: "Only the owner can add an administrator to the team"}
	ErrTournamentApply     = &AuthorizationError{Message: "Only the administrator can send requests to participate in tournaments"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError with a client facing message
func NewAlreadyExistsError(entity, message string) error {
	return &AlreadyExistsError{Entity: entity, Message: message}
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
