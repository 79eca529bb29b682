package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "Team"}
		assert.Equal(t, "Team not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "Team"}
		err2 := &NotFoundError{Entity: "Team"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		assert.False(t, errors.Is(ErrTeamNotFound, ErrMatchNotFound))
	})

	t.Run("errors.Is through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("load team: %w", ErrTeamNotFound)
		assert.True(t, errors.Is(wrapped, ErrTeamNotFound))
		assert.True(t, IsNotFound(wrapped))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrUserNotFound))
		assert.False(t, IsNotFound(ErrSecondOwner))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Client message wins over entity", func(t *testing.T) {
		assert.Equal(t, "A user with this name already exists", ErrUserExists.Error())
	})

	t.Run("Generated message without client message", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "team"}
		assert.Equal(t, "team already exists", err.Error())
	})

	t.Run("errors.Is compares entities", func(t *testing.T) {
		assert.True(t, errors.Is(ErrAlreadyInvited, ErrCallerAlreadyInvited))
		assert.False(t, errors.Is(ErrAlreadyInvited, ErrAlreadyRequested))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrTeamExists))
		assert.False(t, IsAlreadyExists(ErrTeamNotFound))
	})
}

func TestConflictError(t *testing.T) {
	assert.Equal(t, "A team cannot have more than one owner", ErrSecondOwner.Error())
	assert.True(t, IsConflict(fmt.Errorf("wrap: %w", ErrMatchStatusChanged)))
	assert.False(t, IsConflict(ErrTeamExists))
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "name", Message: "invalid format"}
		assert.Equal(t, "name: invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		assert.Equal(t, "The match already has this status", ErrSameStatus.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("name", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrTeamNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	assert.True(t, IsAuthentication(ErrInvalidCredentials))
	assert.Equal(t, "Wrong login or password", ErrInvalidCredentials.Error())
	assert.False(t, IsAuthentication(ErrAdminRequired))

	assert.True(t, IsAuthorization(NewAuthorizationError("nope")))
	assert.False(t, IsAuthorization(ErrNotAuthenticated))
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("Custom entity")
		assert.Equal(t, "Custom entity not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("NewAlreadyExistsError", func(t *testing.T) {
		err := NewAlreadyExistsError("custom", "Custom is taken")
		assert.Equal(t, "Custom is taken", err.Error())
		assert.True(t, IsAlreadyExists(err))
	})

	t.Run("NewConflictError", func(t *testing.T) {
		err := NewConflictError("busy")
		assert.Equal(t, "busy", err.Error())
		assert.True(t, IsConflict(err))
	})
}
