package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// GetStores returns every storefront.
func (h *HTTPHandler) GetStores(c *gin.Context) {
	stores, err := h.store.Stores()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// CreateStore opens a storefront for its owner.
func (h *HTTPHandler) CreateStore(c *gin.Context) {
	var req models.StoreFront
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.CreateStore(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetStoreByID returns a storefront.
func (h *HTTPHandler) GetStoreByID(c *gin.Context) {
	sf, err := h.store.FindStore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sf)
}

// UpdateStore edits a storefront's name and description.
func (h *HTTPHandler) UpdateStore(c *gin.Context) {
	var req models.StoreFront
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")
	if err := h.store.UpdateStore(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserStore resolves the storefront a user owns.
func (h *HTTPHandler) GetUserStore(c *gin.Context) {
	sf, err := h.store.StoreByOwner(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sf)
}

// GetStoreProducts lists a storefront's catalog.
func (h *HTTPHandler) GetStoreProducts(c *gin.Context) {
	products, err := h.store.ProductsByStore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetStoreSales lists a storefront's sales, newest first.
func (h *HTTPHandler) GetStoreSales(c *gin.Context) {
	sales, err := h.store.SalesByStore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetProducts lists the whole catalog.
func (h *HTTPHandler) GetProducts(c *gin.Context) {
	products, err := h.store.Products()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct adds a product to a storefront.
func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req models.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.CreateProduct(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProductByID returns a product.
func (h *HTTPHandler) GetProductByID(c *gin.Context) {
	product, err := h.store.FindProduct(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct edits a product's mutable fields.
func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	var req models.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")
	if err := h.store.UpdateProduct(req); err != nil {
		respondError(c, err)
		return
	}
	product, err := h.store.FindProduct(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog.
func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProductRatings lists a product's ratings.
func (h *HTTPHandler) GetProductRatings(c *gin.Context) {
	ratings, err := h.store.RatingsForProduct(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// AddRating rates a purchased sale, once.
func (h *HTTPHandler) AddRating(c *gin.Context) {
	var req struct {
		SaleID  string `json:"saleId" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.AddRating(req.SaleID, req.Rating, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
