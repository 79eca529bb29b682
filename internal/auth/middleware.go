package auth

import (
	"context"
	"errors"
	"net/http"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the middleware
const (
	contextUser   = "auth_user"
	contextClaims = "auth_claims"
)

// UserLookup resolves the user a token was issued to
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware resolves the caller from the session cookie
type AuthMiddleware struct {
	service *AuthService
	users   UserLookup
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{service: service, users: users}
}

// RequireUser rejects the request with 401 unless the cookie carries a valid token of an existing user
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.claims(c)
		if !ok {
			abort(c, http.StatusUnauthorized, apperrors.ErrNotAuthenticated.Message)
			return
		}
		if !m.resolveUser(c, claims) {
			return
		}
		c.Next()
	}
}

// OptionalUser sets the caller when every check passes and never rejects the request
func (m *AuthMiddleware) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.claims(c)
		if !ok {
			c.Next()
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err == nil {
			setCaller(c, user, claims)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(c).Warnf("optional auth lookup failed: %v", err)
		}
		c.Next()
	}
}

// RequireAdmin rejects with 401 for a missing or invalid token, with 403 when the token
// was not issued by the administrator login, and with 401 when the user no longer exists
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.claims(c)
		if !ok {
			abort(c, http.StatusUnauthorized, apperrors.ErrNotAuthenticated.Message)
			return
		}
		if !claims.IsAdmin {
			abort(c, http.StatusForbidden, apperrors.ErrAdminRequired.Message)
			return
		}
		if !m.resolveUser(c, claims) {
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) claims(c *gin.Context) (*AuthClaims, bool) {
	token, ok := m.service.TokenFromRequest(c)
	if !ok {
		return nil, false
	}
	claims, err := m.service.ValidateJWT(c.Request.Context(), token)
	if err != nil {
		logger.WithContext(c).Debugf("rejected session token: %v", err)
		return nil, false
	}
	return claims, true
}

func (m *AuthMiddleware) resolveUser(c *gin.Context, claims *AuthClaims) bool {
	user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abort(c, http.StatusUnauthorized, apperrors.ErrNotAuthenticated.Message)
			return false
		}
		logger.WithContext(c).Errorf("failed to resolve caller: %v", err)
		abort(c, http.StatusInternalServerError, "Internal server error")
		return false
	}
	setCaller(c, user, claims)
	return true
}

func setCaller(c *gin.Context, user *models.User, claims *AuthClaims) {
	SetCurrentUser(c, user)
	c.Set(contextClaims, claims)
}

// SetCurrentUser stores the caller in the gin context together with the keys read by the logger
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(contextUser, user)
	c.Set("user_id", user.ID)
	c.Set("user_name", user.Name)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// CurrentUser returns the caller resolved by the middleware
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// currentClaims returns the token claims of the caller resolved by the middleware
func currentClaims(c *gin.Context) (*AuthClaims, bool) {
	claims, exists := c.Get(contextClaims)
	if !exists {
		return nil, false
	}

	authClaims, ok := claims.(*AuthClaims)
	return authClaims, ok
}
