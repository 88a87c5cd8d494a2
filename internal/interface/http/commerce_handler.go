package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
	"github.com/alfaSophia29/CyBerPhone1.0/internal/store"
)

// GetCart returns a user's cart lines.
func (h *HTTPHandler) GetCart(c *gin.Context) {
	h.respondCart(c, c.Param("userId"))
}

func (h *HTTPHandler) respondCart(c *gin.Context, userID string) {
	items, err := h.store.CartFor(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddToCart adds a product to a user's cart, merging quantities.
func (h *HTTPHandler) AddToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.Param("userId")
	if err := h.store.AddToCart(userID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, userID)
}

// UpdateCartItem sets the quantity of a cart line. Zero removes it.
func (h *HTTPHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.Param("userId")
	if err := h.store.SetCartQuantity(userID, c.Param("productId"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, userID)
}

// RemoveCartItem drops a product from a user's cart.
func (h *HTTPHandler) RemoveCartItem(c *gin.Context) {
	userID := c.Param("userId")
	if err := h.store.RemoveFromCart(userID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, userID)
}

// ClearCart empties a user's cart.
func (h *HTTPHandler) ClearCart(c *gin.Context) {
	if err := h.store.ClearCart(c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Checkout settles a user's cart in one transaction. The affiliate may
// be given directly or as a short link code.
func (h *HTTPHandler) Checkout(c *gin.Context) {
	var req struct {
		UserID        string                  `json:"userId" binding:"required"`
		AffiliateID   string                  `json:"affiliateId"`
		AffiliateCode string                  `json:"affiliateCode"`
		Shipping      *models.ShippingAddress `json:"shippingAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	affiliateID := req.AffiliateID
	if affiliateID == "" && req.AffiliateCode != "" {
		link, err := h.store.ResolveAffiliateLink(req.AffiliateCode)
		if err != nil && err != store.ErrNotFound {
			respondError(c, err)
			return
		}
		if link != nil {
			affiliateID = link.AffiliateUserID
		}
	}
	sales, err := h.store.Checkout(req.UserID, affiliateID, req.Shipping)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sales": sales})
}

// GetBuyerSales lists purchases made by a user.
func (h *HTTPHandler) GetBuyerSales(c *gin.Context) {
	sales, err := h.store.SalesByBuyer(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetAffiliateSales lists sales credited to an affiliate.
func (h *HTTPHandler) GetAffiliateSales(c *gin.Context) {
	sales, err := h.store.SalesByAffiliate(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// CreateAffiliateLink mints a short share code for a product.
func (h *HTTPHandler) CreateAffiliateLink(c *gin.Context) {
	var req struct {
		AffiliateID string `json:"affiliateId" binding:"required"`
		ProductID   string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	link, err := h.store.CreateAffiliateLink(req.AffiliateID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// GetAffiliateLinks lists the codes minted by an affiliate.
func (h *HTTPHandler) GetAffiliateLinks(c *gin.Context) {
	links, err := h.store.LinksByAffiliate(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}
