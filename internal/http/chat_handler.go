package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nutriguide/internal/repository"
	"nutriguide/internal/service"
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	logger    *zap.Logger
	assistant *service.AssistantService
	messages  repository.MessageRepository
}

func NewChatHandler(logger *zap.Logger, assistant *service.AssistantService, messages repository.MessageRepository) *ChatHandler {
	return &ChatHandler{logger: logger, assistant: assistant, messages: messages}
}

// StartSession handles POST /chat/session.
func (h *ChatHandler) StartSession(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, msg, err := h.assistant.StartSession(c.Request.Context(), req.UserID)
	if err != nil {
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"message":    msg,
	})
}

// PostMessage handles POST /chat/message.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		SessionID     string `json:"session_id" binding:"required"`
		Content       string `json:"content" binding:"required"`
		FromSelection bool   `json:"from_selection"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.assistant.HandleMessage(c.Request.Context(), req.SessionID, service.Answer{
		Text:          req.Content,
		FromSelection: req.FromSelection,
	})
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("handle message failed", zap.Error(err), zap.String("session_id", req.SessionID))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not answer message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetHistory handles GET /chat/history?sessionId=...&limit=N.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId required"})
		return
	}
	if h.messages == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transcripts not enabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.messages.ListBySession(c.Request.Context(), sessionID, limit)
	if err != nil {
		h.logger.Error("history lookup failed", zap.Error(err), zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
