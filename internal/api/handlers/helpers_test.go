package handlers_test

import (
	"powercup-backend/internal/auth"
	"powercup-backend/internal/database/models"

	"github.com/gin-gonic/gin"
)

var (
	owner    = &models.User{BaseModel: models.BaseModel{ID: 1}, Name: "owner"}
	outsider = &models.User{BaseModel: models.BaseModel{ID: 9}, Name: "outsider"}
)

// asCaller plays the part of the auth middleware for handler tests
func asCaller(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			auth.SetCurrentUser(c, user)
		}
		c.Next()
	}
}

func ptr[T any](v T) *T {
	return &v
}
