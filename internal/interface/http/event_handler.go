package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// GetEvents lists every community event with its attendees.
func (h *HTTPHandler) GetEvents(c *gin.Context) {
	events, err := h.store.Events()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateEvent publishes a community event.
func (h *HTTPHandler) CreateEvent(c *gin.Context) {
	var req models.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.CreateEvent(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ToggleJoinEvent joins or leaves an event for a user.
func (h *HTTPHandler) ToggleJoinEvent(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.ToggleJoinEvent(c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
