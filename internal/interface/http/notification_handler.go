package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists a user's notifications, newest first.
func (h *HTTPHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.store.NotificationsFor(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationsRead marks every notification of a user as read.
func (h *HTTPHandler) MarkNotificationsRead(c *gin.Context) {
	if err := h.store.MarkAllRead(c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
