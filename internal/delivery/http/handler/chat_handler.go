package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/usecase/chat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
	log         logrus.FieldLogger
}

func NewChatHandler(chatUseCase *chat.ChatUseCase, log logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		log:         log,
	}
}

// ChatListResponse wraps the chat list
type ChatListResponse struct {
	Chats []chat.ChatSummary `json:"chats"`
}

// ListChats handles GET /chats
// @Summary List chats
// @Description Active chats of the current user, most recent first
// @Tags chats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ChatListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	chats, err := h.chatUseCase.ListChats(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("failed to list chats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch chats"})
		return
	}
	c.JSON(http.StatusOK, ChatListResponse{Chats: chats})
}

// EndChat handles POST /chats/:id/end
// @Summary End chat
// @Tags chats
// @Security BearerAuth
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{id}/end [post]
func (h *ChatHandler) EndChat(c *gin.Context) {
	h.conversationAction(c, "Chat ended", h.chatUseCase.EndChat)
}

// BlockUser handles POST /chats/:id/block
// @Summary Block chat partner
// @Description Block the other participant and end the chat
// @Tags chats
// @Security BearerAuth
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{id}/block [post]
func (h *ChatHandler) BlockUser(c *gin.Context) {
	h.conversationAction(c, "User blocked", h.chatUseCase.BlockUser)
}

func (h *ChatHandler) conversationAction(c *gin.Context, done string, action func(ctx context.Context, userID, conversationID string) error) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	conversationID := c.Param("id")
	if _, err := uuid.Parse(conversationID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Chat not found"})
		return
	}

	if err := action(c.Request.Context(), userID, conversationID); err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Chat not found"})
			return
		}
		h.log.WithError(err).WithFields(logrus.Fields{
			"user_id":         userID,
			"conversation_id": conversationID,
		}).Error("chat action failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Chat action failed"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: done})
}
