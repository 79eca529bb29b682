package handlers

import (
	"net/http"

	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MatchHandler handles HTTP requests for matches
type MatchHandler struct {
	service service.MatchServiceInterface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService service.MatchServiceInterface) *MatchHandler {
	return &MatchHandler{service: matchService}
}

type idQuery struct {
	ID uint `form:"id" binding:"required"`
}

// CreateMatch handles POST /match and POST /match/competitive
// @Summary Create a match
// @Description Only competitive matches between two distinct existing teams can be created.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body service.CreateMatchRequest true "Participating teams"
// @Success 201 {object} service.MatchResponse "Created match"
// @Failure 400 {object} ErrorResponse "Invalid teams or match type"
// @Failure 403 {object} ErrorResponse "Administrator privileges required"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security CookieAuth
// @Router /match [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req service.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	match, err := h.service.Create(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// GetMatch handles GET /match
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id query int true "Match ID"
// @Success 200 {object} service.MatchResponse "Match"
// @Failure 400 {object} ErrorResponse "Missing ID"
// @Failure 404 {object} ErrorResponse "Match not found"
// @Router /match [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	var query idQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	match, err := h.service.Get(c, query.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// ListMatches handles GET /matches
// @Summary List matches
// @Tags matches
// @Produce json
// @Success 200 {array} service.MatchResponse "All matches"
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	matches, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// EditMatch handles PATCH /match
// @Summary Change the status of a match
// @Description preparing -> in_progress -> finished, cancelled from any unfinished status. Finishing requires a participating winner.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body service.EditMatchRequest true "New status"
// @Success 200 {object} service.MatchResponse "Updated match"
// @Failure 400 {object} ErrorResponse "Invalid transition or winner"
// @Failure 403 {object} ErrorResponse "Administrator privileges required"
// @Failure 404 {object} ErrorResponse "Match not found"
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Security CookieAuth
// @Router /match [patch]
func (h *MatchHandler) EditMatch(c *gin.Context) {
	var req service.EditMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	match, err := h.service.Edit(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}
