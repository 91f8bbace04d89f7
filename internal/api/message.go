package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
	"github.com/lalith-99/lockerroom/internal/observ"
	"github.com/lalith-99/lockerroom/internal/service"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messages MessageService
	gate     MemberGate
	stream   EventStream
}

func NewMessageHandler(messages MessageService, gate MemberGate, stream EventStream) *MessageHandler {
	return &MessageHandler{messages: messages, gate: gate, stream: stream}
}

// Create handles POST /v1/teams/:teamId/messages
func (h *MessageHandler) Create(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}
	var req service.MessageInput
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messages.Create(c.Request.Context(), middleware.CurrentUser(c), teamID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List handles GET /v1/teams/:teamId/messages?page=1&pageSize=3
func (h *MessageHandler) List(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	page, err := h.messages.List(c.Request.Context(), middleware.CurrentUser(c), teamID,
		c.Query("page"), c.Query("pageSize"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Next handles GET /v1/teams/:teamId/messages/next
//
// Without a page query it serves the page after the one the caller last
// fetched here.
func (h *MessageHandler) Next(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	page, err := h.messages.Next(c.Request.Context(), middleware.CurrentUser(c), teamID,
		c.Query("page"), c.Query("pageSize"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Edit handles PATCH /v1/teams/:teamId/messages/:messageId
func (h *MessageHandler) Edit(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	var req service.MessageInput
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messages.Edit(c.Request.Context(), middleware.CurrentUser(c), teamID, messageID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Delete handles DELETE /v1/teams/:teamId/messages/:messageId
func (h *MessageHandler) Delete(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	if err := h.messages.Delete(c.Request.Context(), middleware.CurrentUser(c), teamID, messageID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream handles GET /v1/teams/:teamId/ws. Membership is checked before
// the upgrade so a denied caller gets a normal JSON error.
func (h *MessageHandler) Stream(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	team, err := h.gate.RequireMember(c.Request.Context(), middleware.CurrentUser(c), teamID)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.stream.Serve(c.Writer, c.Request, team.ID); err != nil {
		// The upgrader has already written the failure response.
		observ.FromContext(c.Request.Context()).Debug("websocket upgrade failed", zap.Error(err))
	}
}
