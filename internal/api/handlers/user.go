package handlers

import (
	"net/http"

	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	service service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{service: userService}
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create an account. The name may contain latin letters, digits and underscores.
// @Tags authentication
// @Accept json
// @Produce json
// @Param user body service.RegisterRequest true "Account data"
// @Success 201 {object} service.UserResponse "Created user"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "A user with this name already exists"
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.Register(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /user
// @Summary Get a user
// @Description Find a user by ID or name. Personal data is only returned to the user themself.
// @Tags users
// @Produce json
// @Param id query int false "User ID"
// @Param name query string false "User name"
// @Success 200 {object} service.UserResponse "User"
// @Failure 400 {object} ErrorResponse "Neither ID nor name given"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /user [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	var query service.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.GetUser(c, query, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} service.UserResponse "All users"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me handles GET /me
// @Summary Current user
// @Description The authenticated user including personal data
// @Tags users
// @Produce json
// @Success 200 {object} service.UserResponse "Current user"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security CookieAuth
// @Router /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := requireCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.Me(user))
}

// MyTeams handles GET /me/teams
// @Summary Teams of the current user
// @Tags users
// @Produce json
// @Success 200 {array} service.TeamResponse "Teams the caller is a member of"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security CookieAuth
// @Router /me/teams [get]
func (h *UserHandler) MyTeams(c *gin.Context) {
	user, ok := requireCaller(c)
	if !ok {
		return
	}

	teams, err := h.service.GetTeams(c, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}
