package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OpenConversation finds or starts the conversation between two users.
func (h *HTTPHandler) OpenConversation(c *gin.Context) {
	var req struct {
		UserA string `json:"userA" binding:"required"`
		UserB string `json:"userB" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conv, err := h.store.GetOrCreateConversation(req.UserA, req.UserB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// GetConversationsByUser lists a user's conversations, most recent first.
func (h *HTTPHandler) GetConversationsByUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		uid, ok := requireUID(c)
		if !ok {
			return
		}
		userID = uid
	}
	convs, err := h.store.ConversationsFor(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

// SendMessage appends a message to a conversation.
func (h *HTTPHandler) SendMessage(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversationId" binding:"required"`
		SenderID       string `json:"senderId" binding:"required"`
		Content        string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.store.SendMessage(req.ConversationID, req.SenderID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetMessages lists a conversation's messages in send order.
func (h *HTTPHandler) GetMessages(c *gin.Context) {
	msgs, err := h.store.Messages(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
