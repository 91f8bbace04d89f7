package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
	"github.com/lalith-99/lockerroom/internal/service"
)

type TeamHandler struct {
	teams TeamService
}

func NewTeamHandler(teams TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// Create handles POST /v1/teams
func (h *TeamHandler) Create(c *gin.Context) {
	var req service.CreateTeamInput
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teams.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// List handles GET /v1/teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// Delete handles DELETE /v1/teams/:teamId
func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	if err := h.teams.Delete(c.Request.Context(), middleware.CurrentUser(c), teamID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
