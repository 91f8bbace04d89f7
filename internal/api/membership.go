package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
	"github.com/lalith-99/lockerroom/internal/service"
)

// MembershipHandler serves a team's member list. Adding is admin-only and
// goes by email.
type MembershipHandler struct {
	teams TeamService
}

func NewMembershipHandler(teams TeamService) *MembershipHandler {
	return &MembershipHandler{teams: teams}
}

// Add handles POST /v1/teams/:teamId/members
func (h *MembershipHandler) Add(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}
	var req service.AddMemberInput
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.teams.AddMember(c.Request.Context(), middleware.CurrentUser(c), teamID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"team_id": teamID, "user_id": member.ID})
}

// List handles GET /v1/teams/:teamId/members
func (h *MembershipHandler) List(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	members, err := h.teams.ListMembers(c.Request.Context(), middleware.CurrentUser(c), teamID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
