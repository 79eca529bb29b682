package handlers

import (
	"net/http"

	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GameHandler handles HTTP requests for the game catalogue
type GameHandler struct {
	service service.GameServiceInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService service.GameServiceInterface) *GameHandler {
	return &GameHandler{service: gameService}
}

// GetGame handles GET /tournament/game
// @Summary Get a game
// @Tags games
// @Produce json
// @Param id query int true "Game ID"
// @Success 200 {object} service.GameResponse "Game"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /tournament/game [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	var query idQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	game, err := h.service.Get(c, query.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// ListGames handles GET /tournament/games
// @Summary List games
// @Tags games
// @Produce json
// @Success 200 {array} service.GameResponse "All games"
// @Router /tournament/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// CreateGame handles POST /tournament/game
// @Summary Add a game
// @Tags games
// @Accept json
// @Produce json
// @Param game body service.CreateGameRequest true "Game"
// @Success 201 {object} service.GameResponse "Created game"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Name is used"
// @Security CookieAuth
// @Router /tournament/game [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req service.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	game, err := h.service.Create(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// UpdateGame handles PUT /tournament/game
// @Summary Rename a game
// @Tags games
// @Accept json
// @Produce json
// @Param game body service.UpdateGameRequest true "Game"
// @Success 200 {object} service.GameResponse "Updated game"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Failure 409 {object} ErrorResponse "Name is used"
// @Security CookieAuth
// @Router /tournament/game [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	var req service.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	game, err := h.service.Update(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}
