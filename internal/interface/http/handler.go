package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/store"
)

// HTTPHandler represents the HTTP server.
type HTTPHandler struct {
	store       *store.Store
	authManager *AuthManager
	aiManager   *AIManager
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(st *store.Store, authManager *AuthManager) *HTTPHandler {
	return &HTTPHandler{
		store:       st,
		authManager: authManager,
	}
}

// SetAIManager sets the AI suggestion manager.
func (h *HTTPHandler) SetAIManager(manager *AIManager) {
	h.aiManager = manager
}

// RegisterRoutes registers all HTTP routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := router.Group("/api")
	// Token verification only attaches the uid when a token is present; the
	// store's silent no-op semantics handle bad ids below this line.
	api.Use(VerifyTokenMiddleware(h.authManager))
	{
		// Auth routes
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", h.GetCurrentUser)

		// User routes
		api.GET("/users", h.GetUsers)
		api.GET("/users/:id", h.GetUserByID)
		api.PUT("/users/:id", h.UpdateProfile)
		api.POST("/users/:id/card", h.RequestCard)
		api.GET("/users/:id/store", h.GetUserStore)

		// Wallet routes
		api.GET("/wallet/:userId", h.GetWallet)
		api.POST("/wallet/:userId/deposit", h.Deposit)
		api.POST("/wallet/:userId/withdraw", h.Withdraw)

		// Follow routes
		api.POST("/follows/toggle", h.ToggleFollow)
		api.GET("/follows/followers/:userId", h.GetFollowers)
		api.GET("/follows/following/:userId", h.GetFollowing)

		// Post routes
		api.GET("/feed", h.GetFeed)
		api.POST("/posts", h.CreatePost)
		api.GET("/posts/:id", h.GetPostByID)
		api.DELETE("/posts/:id", h.DeletePost)
		api.GET("/users/:id/posts", h.GetUserPosts)
		api.POST("/posts/:id/pin", h.PinPost)
		api.POST("/posts/:id/unpin", h.UnpinPost)
		api.POST("/posts/:id/like", h.ToggleLike)
		api.POST("/posts/:id/save", h.ToggleSave)
		api.POST("/posts/:id/share", h.SharePost)
		api.POST("/posts/:id/reactions", h.ToggleReaction)
		api.POST("/posts/:id/comments", h.AddComment)
		api.GET("/audio-tracks", h.GetAudioTracks)

		// Store routes
		api.GET("/stores", h.GetStores)
		api.POST("/stores", h.CreateStore)
		api.GET("/stores/:id", h.GetStoreByID)
		api.PUT("/stores/:id", h.UpdateStore)
		api.GET("/stores/:id/products", h.GetStoreProducts)
		api.GET("/stores/:id/sales", h.GetStoreSales)

		// Product routes
		api.GET("/products", h.GetProducts)
		api.POST("/products", h.CreateProduct)
		api.GET("/products/:id", h.GetProductByID)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
		api.GET("/products/:id/ratings", h.GetProductRatings)

		// Cart routes
		api.GET("/cart/:userId", h.GetCart)
		api.POST("/cart/:userId/items", h.AddToCart)
		api.PUT("/cart/:userId/items/:productId", h.UpdateCartItem)
		api.DELETE("/cart/:userId/items/:productId", h.RemoveCartItem)
		api.DELETE("/cart/:userId", h.ClearCart)

		// Checkout and sales routes
		api.POST("/checkout", h.Checkout)
		api.GET("/sales/buyer/:userId", h.GetBuyerSales)
		api.GET("/sales/affiliate/:userId", h.GetAffiliateSales)
		api.POST("/ratings", h.AddRating)

		// Affiliate link routes
		api.POST("/affiliate-links", h.CreateAffiliateLink)
		api.GET("/affiliate-links/user/:userId", h.GetAffiliateLinks)

		// Notification routes
		api.GET("/notifications/:userId", h.GetNotifications)
		api.POST("/notifications/:userId/read", h.MarkNotificationsRead)

		// Event routes
		api.GET("/events", h.GetEvents)
		api.POST("/events", h.CreateEvent)
		api.POST("/events/:id/join", h.ToggleJoinEvent)

		// Ad campaign routes
		api.GET("/ads", h.GetAdCampaigns)
		api.POST("/ads", h.CreateAdCampaign)

		// Chat routes
		api.POST("/conversations", h.OpenConversation)
		api.GET("/conversations", h.GetConversationsByUser)
		api.POST("/messages", h.SendMessage)
		api.GET("/conversations/:id/messages", h.GetMessages)

		// AI routes
		api.POST("/ai/suggest-bio", h.SuggestBio)
		api.POST("/ai/suggest-ad-copy", h.SuggestAdCopy)
	}
}

// respondError maps store failures to their HTTP status. Nothing in the core
// surfaces as an unhandled fault.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
	case errors.Is(err, store.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": "sale already rated"})
	case errors.Is(err, store.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner"})
	case errors.Is(err, store.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
