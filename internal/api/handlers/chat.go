package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
)

// ChatHandler serves the assistant chat endpoint.
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Locale  string `json:"locale"`
}

// Chat classifies the message intent and returns the canned localized reply.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = requestLocale(c)
	}

	c.JSON(http.StatusOK, h.chat.Reply(req.Message, locale))
}
