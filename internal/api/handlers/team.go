package handlers

import (
	"net/http"

	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for teams and their members
type TeamHandler struct {
	service service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{service: teamService}
}

// GetTeam handles GET /team
// @Summary Get a team
// @Description Find a team by ID or name. Pending join requests are listed only for the team's owner and administrators.
// @Tags teams
// @Produce json
// @Param id query int false "Team ID"
// @Param name query string false "Team name"
// @Success 200 {object} service.TeamResponse "Team"
// @Failure 400 {object} ErrorResponse "Neither ID nor name given"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Router /team [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	var query service.TeamQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.service.GetTeam(c, query, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// ListTeams handles GET /teams
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {array} service.TeamResponse "All teams with their members"
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// CreateTeam handles POST /team
// @Summary Create a team
// @Description The caller becomes the owner. Every user in members_ids receives an invitation.
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.CreateTeamRequest true "Team data"
// @Success 201 {object} service.TeamResponse "Created team"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 404 {object} ErrorResponse "Invited user not found"
// @Failure 409 {object} ErrorResponse "A team with this name already exists"
// @Security CookieAuth
// @Router /team [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.service.Create(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// UpdateTeam handles PATCH /team
// @Summary Update a team
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.UpdateTeamRequest true "Fields to change"
// @Success 200 {object} service.TeamResponse "Updated team"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Caller does not manage the team"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 409 {object} ErrorResponse "A team with this name already exists"
// @Security CookieAuth
// @Router /team [patch]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.service.Update(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /team
// @Summary Delete a team
// @Description Only the owner can delete the team. Memberships, requests and participations are removed with it.
// @Tags teams
// @Accept json
// @Param team body service.TeamIDRequest true "Team to delete"
// @Success 204 "Team deleted"
// @Failure 403 {object} ErrorResponse "Caller is not the owner"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security CookieAuth
// @Router /team [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.Delete(c, caller.ID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMember handles POST /team/member
// @Summary Add a member
// @Description Add a user to the team directly. Only the owner may add administrators.
// @Tags teams
// @Accept json
// @Produce json
// @Param member body service.TeamMemberRequest true "Membership"
// @Success 201 {object} service.TeamMemberResponse "Created membership"
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Failure 403 {object} ErrorResponse "Not allowed"
// @Failure 404 {object} ErrorResponse "Team or user not found"
// @Failure 409 {object} ErrorResponse "Already a member or a second owner"
// @Security CookieAuth
// @Router /team/member [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.service.AddMember(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// ChangeRole handles PATCH /team/member
// @Summary Change a member's role
// @Tags teams
// @Accept json
// @Produce json
// @Param member body service.TeamMemberRequest true "Membership and new role"
// @Success 200 {object} service.TeamMemberResponse "Updated membership"
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Failure 403 {object} ErrorResponse "Not allowed"
// @Failure 404 {object} ErrorResponse "Team or member not found"
// @Failure 409 {object} ErrorResponse "Owner role cannot change"
// @Security CookieAuth
// @Router /team/member [patch]
func (h *TeamHandler) ChangeRole(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.service.ChangeRole(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// RemoveMember handles DELETE /team/member
// @Summary Remove a member
// @Description Managers remove members, any member but the owner may leave.
// @Tags teams
// @Accept json
// @Param member body service.TeamMemberRequest true "Membership to remove"
// @Success 204 "Member removed"
// @Failure 403 {object} ErrorResponse "Not allowed"
// @Failure 404 {object} ErrorResponse "Team or member not found"
// @Failure 409 {object} ErrorResponse "The owner cannot be removed"
// @Security CookieAuth
// @Router /team/member [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.RemoveMember(c, caller.ID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
