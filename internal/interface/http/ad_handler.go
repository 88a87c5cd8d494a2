package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// GetAdCampaigns lists every running ad campaign.
func (h *HTTPHandler) GetAdCampaigns(c *gin.Context) {
	campaigns, err := h.store.AdCampaigns()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// CreateAdCampaign launches a campaign funded from the advertiser's wallet.
func (h *HTTPHandler) CreateAdCampaign(c *gin.Context) {
	var req models.AdCampaign
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.CreateAdCampaign(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
