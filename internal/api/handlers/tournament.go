package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TournamentHandler handles HTTP requests for tournaments and their participants
type TournamentHandler struct {
	service        service.TournamentServiceInterface
	maxPosterBytes int64
}

// NewTournamentHandler creates a new tournament handler. Posters are read up to one byte past the
// limit so that oversized uploads can be told apart from uploads of exactly the allowed size.
func NewTournamentHandler(tournamentService service.TournamentServiceInterface, maxPosterBytes int64) *TournamentHandler {
	return &TournamentHandler{service: tournamentService, maxPosterBytes: maxPosterBytes}
}

// CreateTournament handles POST /tournament
// @Summary Create a tournament
// @Description Multipart form with the tournament fields and a PNG, JPEG or WEBP poster.
// @Tags tournaments
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Tournament name"
// @Param description formData string false "Description"
// @Param game_id formData int true "Game ID"
// @Param poster formData file true "Poster image"
// @Success 201 {object} service.TournamentResponse "Created tournament"
// @Failure 400 {object} ErrorResponse "Invalid fields or image"
// @Failure 403 {object} ErrorResponse "Administrator privileges required"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Security CookieAuth
// @Router /tournament [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var req service.CreateTournamentRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	poster, err := h.readPoster(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	tournament, err := h.service.Create(c, &req, poster)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tournament)
}

// readPoster returns the uploaded poster, or nil when the form has no poster part
func (h *TournamentHandler) readPoster(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open poster: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxPosterBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read poster: %w", err)
	}
	return data, nil
}

// GetTournament handles GET /tournament
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param id query int true "Tournament ID"
// @Success 200 {object} service.TournamentResponse "Tournament"
// @Failure 404 {object} ErrorResponse "Tournament not found"
// @Router /tournament [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	var query idQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	tournament, err := h.service.Get(c, query.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// ListTournaments handles GET /tournaments
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Success 200 {array} service.TournamentResponse "All tournaments"
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(c *gin.Context) {
	tournaments, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// UpdateTournament handles PATCH /tournament
// @Summary Update a tournament
// @Description pending -> active -> finished, cancelled from pending or active.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournament body service.UpdateTournamentRequest true "Fields to change"
// @Success 200 {object} service.TournamentResponse "Updated tournament"
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 404 {object} ErrorResponse "Tournament not found"
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Security CookieAuth
// @Router /tournament [patch]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	var req service.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tournament, err := h.service.Update(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// JoinTournament handles POST /tournament/member
// @Summary Apply a team to a tournament
// @Description The caller must be the owner or an administrator of the team.
// @Tags tournaments
// @Accept json
// @Param participation body service.TournamentTeamRequest true "Tournament and team"
// @Success 204 "Application sent"
// @Failure 403 {object} ErrorResponse "Not allowed or tournament closed"
// @Failure 404 {object} ErrorResponse "Tournament or team not found"
// @Failure 409 {object} ErrorResponse "Already applied"
// @Security CookieAuth
// @Router /tournament/member [post]
func (h *TournamentHandler) JoinTournament(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TournamentTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.Join(c, caller.ID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetMemberStatus handles PATCH /tournament/member
// @Summary Accept or reject a team
// @Tags tournaments
// @Accept json
// @Param participation body service.TournamentMemberStatusRequest true "Participation status"
// @Success 204 "Status updated"
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Tournament or team not found"
// @Failure 409 {object} ErrorResponse "The team did not apply"
// @Security CookieAuth
// @Router /tournament/member [patch]
func (h *TournamentHandler) SetMemberStatus(c *gin.Context) {
	var req service.TournamentMemberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.SetMemberStatus(c, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
