package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               uint `json:"id" example:"42"`
	IsAdmin              bool `json:"adm" example:"false"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// AuthService issues and validates the signed tokens carried in the session cookie
type AuthService struct {
	config      *AuthConfig
	revocations RevocationStore
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig, revocations RevocationStore) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	if revocations == nil {
		revocations = NoopRevocationStore{}
	}

	return &AuthService{
		config:      config,
		revocations: revocations,
	}, nil
}

// GenerateJWT creates a signed token for the user
func (s *AuthService) GenerateJWT(userID uint, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a token, rejecting revoked ones
func (s *AuthService) ValidateJWT(ctx context.Context, tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("token has been revoked")
		}
	}

	return claims, nil
}

// Revoke invalidates a token before its natural expiry
func (s *AuthService) Revoke(ctx context.Context, claims *AuthClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// TokenFromRequest returns the token carried by the session cookie
func (s *AuthService) TokenFromRequest(c *gin.Context) (string, bool) {
	token, err := c.Cookie(s.config.CookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// SetTokenCookie writes the HttpOnly session cookie
func (s *AuthService) SetTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.CookieName, token, int(s.config.TokenTTL.Seconds()), "/", "", s.config.CookieSecure, true)
}

// ClearTokenCookie expires the session cookie
func (s *AuthService) ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.CookieName, "", -1, "/", "", s.config.CookieSecure, true)
}
