package handlers

import (
	"net/http"

	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamJoinHandler handles invitations and join requests
type TeamJoinHandler struct {
	service service.TeamJoinServiceInterface
}

// NewTeamJoinHandler creates a new invitation handler
func NewTeamJoinHandler(joinService service.TeamJoinServiceInterface) *TeamJoinHandler {
	return &TeamJoinHandler{service: joinService}
}

type teamIDQuery struct {
	TeamID uint `form:"team_id"`
}

// Invite handles POST /team/join/invite
// @Summary Invite a user
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body service.TeamUserRequest true "Team and invited user"
// @Success 201 {object} service.JoinRequestResponse "Pending invitation"
// @Failure 403 {object} ErrorResponse "Caller does not manage the team"
// @Failure 404 {object} ErrorResponse "Team or user not found"
// @Failure 409 {object} ErrorResponse "Already a member, invited or requested"
// @Security CookieAuth
// @Router /team/join/invite [post]
func (h *TeamJoinHandler) Invite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	invitation, err := h.service.Invite(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invitation)
}

// RespondInvitation handles PATCH /team/join/invite
// @Summary Answer an invitation
// @Description Accepting makes the caller a member and returns the team, declining only drops the invitation.
// @Tags invitations
// @Accept json
// @Produce json
// @Param answer body service.InvitationAnswer true "Answer"
// @Success 200 {object} service.TeamResponse "Joined team"
// @Success 204 "Invitation declined"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Security CookieAuth
// @Router /team/join/invite [patch]
func (h *TeamJoinHandler) RespondInvitation(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.InvitationAnswer
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.service.RespondInvitation(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJoined(c, team)
}

// CancelInvitation handles DELETE /team/join/invite
// @Summary Cancel an invitation
// @Tags invitations
// @Accept json
// @Param invitation body service.TeamUserRequest true "Team and invited user"
// @Success 204 "Invitation cancelled"
// @Failure 403 {object} ErrorResponse "Caller does not manage the team"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Security CookieAuth
// @Router /team/join/invite [delete]
func (h *TeamJoinHandler) CancelInvitation(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.CancelInvitation(c, caller.ID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Request handles POST /team/join/request
// @Summary Ask to join a team
// @Tags invitations
// @Accept json
// @Produce json
// @Param request body service.TeamIDRequest true "Team to join"
// @Success 201 {object} service.JoinRequestResponse "Pending request"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 409 {object} ErrorResponse "Already a member, invited or requested"
// @Security CookieAuth
// @Router /team/join/request [post]
func (h *TeamJoinHandler) Request(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	request, err := h.service.Request(c, caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// RespondRequest handles PATCH /team/join/request
// @Summary Answer a join request
// @Tags invitations
// @Accept json
// @Produce json
// @Param answer body service.RequestAnswer true "Answer"
// @Success 200 {object} service.TeamResponse "Team with the new member"
// @Success 204 "Request rejected"
// @Failure 403 {object} ErrorResponse "Caller does not manage the team"
// @Failure 404 {object} ErrorResponse "Join request not found"
// @Security CookieAuth
// @Router /team/join/request [patch]
func (h *TeamJoinHandler) RespondRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.RequestAnswer
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.service.RespondRequest(c, caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJoined(c, team)
}

// CancelRequest handles DELETE /team/join/request
// @Summary Withdraw a join request
// @Tags invitations
// @Accept json
// @Param request body service.TeamIDRequest true "Team"
// @Success 204 "Request withdrawn"
// @Failure 404 {object} ErrorResponse "Join request not found"
// @Security CookieAuth
// @Router /team/join/request [delete]
func (h *TeamJoinHandler) CancelRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req service.TeamIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.CancelRequest(c, caller.ID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListInvitations handles GET /team/join/invitations
// @Summary Pending invitations of the caller
// @Tags invitations
// @Produce json
// @Success 200 {array} service.InvitationResponse "Invitations"
// @Security CookieAuth
// @Router /team/join/invitations [get]
func (h *TeamJoinHandler) ListInvitations(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	invitations, err := h.service.ListInvitations(c, caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitations)
}

// ListRequests handles GET /team/join/requests
// @Summary Pending requests and invitations of a team
// @Tags invitations
// @Produce json
// @Param team_id query int true "Team ID"
// @Success 200 {array} service.JoinRequestResponse "Pending rows"
// @Failure 400 {object} ErrorResponse "Missing team_id"
// @Failure 403 {object} ErrorResponse "Caller does not manage the team"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security CookieAuth
// @Router /team/join/requests [get]
func (h *TeamJoinHandler) ListRequests(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var query teamIDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	requests, err := h.service.ListRequests(c, caller.ID, query.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// respondJoined answers 200 with the team after an accept and 204 after a decline
func respondJoined(c *gin.Context, team *service.TeamResponse) {
	if team == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, team)
}
