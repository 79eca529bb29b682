package handlers

import (
	"net/http"

	"powercup-backend/internal/auth"
	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// requireCaller returns the user resolved by the auth middleware or answers 401
func requireCaller(c *gin.Context) (*models.User, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: apperrors.ErrNotAuthenticated.Message})
		return nil, false
	}
	return user, true
}

// viewerID returns the caller's ID on optionally authenticated routes, 0 for anonymous callers
func viewerID(c *gin.Context) uint {
	if user, ok := auth.CurrentUser(c); ok {
		return user.ID
	}
	return 0
}
