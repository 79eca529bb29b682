package auth

import (
	"context"
	"net/http"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Authenticator checks credentials against the user store
type Authenticator interface {
	Authenticate(ctx context.Context, name, password string) (*models.User, error)
	AuthenticateAdmin(ctx context.Context, name, password string) (*models.User, error)
}

// LoginRequest represents the credentials posted to the login endpoints
type LoginRequest struct {
	Name     string `json:"name" binding:"required,max=48" example:"john_doe"`
	Password string `json:"password" binding:"required,max=128" example:"secret"`
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service  *AuthService
	accounts Authenticator
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService, accounts Authenticator) *AuthHandler {
	return &AuthHandler{service: service, accounts: accounts}
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Check the credentials and set the session cookie
// @Tags authentication
// @Accept json
// @Param credentials body LoginRequest true "User credentials"
// @Success 204 "Session cookie set"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Wrong login or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, false)
}

// AdminLogin handles POST /admin/login
// @Summary Log in as administrator
// @Description Check the credentials of an administrator and set a session cookie carrying the admin flag
// @Tags authentication
// @Accept json
// @Param credentials body LoginRequest true "Administrator credentials"
// @Success 204 "Session cookie set"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Wrong login or password"
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, true)
}

func (h *AuthHandler) login(c *gin.Context, admin bool) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		user *models.User
		err  error
	)
	if admin {
		user, err = h.accounts.AuthenticateAdmin(c.Request.Context(), req.Name, req.Password)
	} else {
		user, err = h.accounts.Authenticate(c.Request.Context(), req.Name, req.Password)
	}
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Message})
			return
		}
		logger.WithContext(c).Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.service.GenerateJWT(user.ID, admin)
	if err != nil {
		logger.WithContext(c).Errorf("failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.service.SetTokenCookie(c, token)
	logger.WithContext(c).WithField("admin", admin).Infof("user %d logged in", user.ID)
	c.Status(http.StatusNoContent)
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Description Clear the session cookie and revoke its token
// @Tags authentication
// @Success 204 "Session cookie cleared"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := h.service.TokenFromRequest(c); ok {
		if claims, err := h.service.ValidateJWT(c.Request.Context(), token); err == nil {
			if err := h.service.Revoke(c.Request.Context(), claims); err != nil {
				logger.WithContext(c).Warnf("failed to revoke token: %v", err)
			}
		}
	}

	h.service.ClearTokenCookie(c)
	c.Status(http.StatusNoContent)
}
