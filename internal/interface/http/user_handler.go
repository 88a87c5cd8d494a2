package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// Register creates an account and returns the user with a session token.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req struct {
		UserType  string `json:"userType"`
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserType == "" {
		req.UserType = models.UserTypeStandard
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		UserType:  req.UserType,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Balance:   decimal.Zero,
	}
	if err := h.store.CreateUser(user, string(hash)); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authManager.IssueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user.FollowedUsers = []string{}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login checks credentials and returns the user with a session token.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, hash, err := h.store.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.authManager.IssueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// GetCurrentUser returns the authenticated user's profile.
func (h *HTTPHandler) GetCurrentUser(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	user, err := h.store.FindUser(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUsers returns all users.
func (h *HTTPHandler) GetUsers(c *gin.Context) {
	users, err := h.store.Users()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID returns a user by ID.
func (h *HTTPHandler) GetUserByID(c *gin.Context) {
	user, err := h.store.FindUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile edits the editable identity fields.
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")
	if err := h.store.UpdateProfile(req); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.store.FindUser(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RequestCard stores the user's payment instrument snapshot.
func (h *HTTPHandler) RequestCard(c *gin.Context) {
	var card models.PaymentCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.RequestCard(c.Param("id"), card); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleFollow flips the follow edge between two users.
func (h *HTTPHandler) ToggleFollow(c *gin.Context) {
	var req struct {
		FollowerID string `json:"followerId" binding:"required"`
		TargetID   string `json:"targetId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.ToggleFollow(req.FollowerID, req.TargetID); err != nil {
		respondError(c, err)
		return
	}
	following, err := h.store.IsFollowing(req.FollowerID, req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowing": following})
}

// GetFollowers returns the ids following a user.
func (h *HTTPHandler) GetFollowers(c *gin.Context) {
	ids, err := h.store.Followers(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": ids})
}

// GetFollowing returns the ids a user follows.
func (h *HTTPHandler) GetFollowing(c *gin.Context) {
	ids, err := h.store.Following(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": ids})
}
