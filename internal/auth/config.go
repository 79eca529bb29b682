package auth

import (
	"fmt"
	"time"

	"powercup-backend/internal/config"
)

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret" json:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl" json:"token_ttl"`
	CookieName   string        `yaml:"cookie_name" json:"cookie_name"`
	CookieSecure bool          `yaml:"cookie_secure" json:"cookie_secure"`
	Issuer       string        `yaml:"issuer" json:"issuer"`
}

// NewAuthConfig derives the authentication settings from the application configuration
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     time.Duration(cfg.JWTTTLMinutes) * time.Minute,
		CookieName:   cfg.CookieName,
		CookieSecure: cfg.CookieSecure,
		Issuer:       "powercup-backend",
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if c.CookieName == "" {
		return fmt.Errorf("cookie name is required")
	}

	return nil
}
