package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
	"github.com/lalith-99/lockerroom/internal/service"
)

type DirectMessageHandler struct {
	messages DirectMessageService
}

func NewDirectMessageHandler(messages DirectMessageService) *DirectMessageHandler {
	return &DirectMessageHandler{messages: messages}
}

// Send handles POST /v1/direct-messages
func (h *DirectMessageHandler) Send(c *gin.Context) {
	var req service.DirectMessageInput
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List handles GET /v1/direct-messages?page=1&pageSize=3
func (h *DirectMessageHandler) List(c *gin.Context) {
	page, err := h.messages.List(c.Request.Context(), middleware.CurrentUser(c),
		c.Query("page"), c.Query("pageSize"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Edit handles PATCH /v1/direct-messages/:messageId
func (h *DirectMessageHandler) Edit(c *gin.Context) {
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	var req service.MessageInput
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messages.Edit(c.Request.Context(), middleware.CurrentUser(c), messageID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Delete handles DELETE /v1/direct-messages/:messageId
func (h *DirectMessageHandler) Delete(c *gin.Context) {
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	if err := h.messages.Delete(c.Request.Context(), middleware.CurrentUser(c), messageID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
