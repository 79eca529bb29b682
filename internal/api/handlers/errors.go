package handlers

import (
	"errors"
	"net/http"

	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// respondError maps a service error to its status code and writes {"error": message}
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithContext(c).Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		notFound      *apperrors.NotFoundError
		alreadyExists *apperrors.AlreadyExistsError
		conflict      *apperrors.ConflictError
		validation    *apperrors.ValidationError
		authn         *apperrors.AuthenticationError
		authz         *apperrors.AuthorizationError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &alreadyExists), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &authn):
		return http.StatusUnauthorized
	case errors.As(err, &authz):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// badRequest answers a body or query that could not be bound
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
}
