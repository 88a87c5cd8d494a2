package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// GetFeed returns the posts visible to the viewer right now. Authors always
// see their own scheduled posts; everyone else waits for the scheduled time.
func (h *HTTPHandler) GetFeed(c *gin.Context) {
	viewerID := c.Query("viewerId")
	posts, err := h.store.VisiblePosts(time.Now().UnixMilli(), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post.
func (h *HTTPHandler) CreatePost(c *gin.Context) {
	var req models.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.store.CreatePost(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetPostByID returns a post with all engagement state.
func (h *HTTPHandler) GetPostByID(c *gin.Context) {
	post, err := h.store.GetPost(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post; owner only.
func (h *HTTPHandler) DeletePost(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.DeletePost(c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserPosts returns an author's posts, scheduled ones included.
func (h *HTTPHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.store.PostsByUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// PinPost pins the post and unpins the author's other posts.
func (h *HTTPHandler) PinPost(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SetPinned(c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnpinPost clears the pin flag.
func (h *HTTPHandler) UnpinPost(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.Unpin(c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleLike flips the caller's like on the post.
func (h *HTTPHandler) ToggleLike(c *gin.Context) {
	h.engagementToggle(c, h.store.ToggleLike)
}

// ToggleSave flips the caller's save on the post.
func (h *HTTPHandler) ToggleSave(c *gin.Context) {
	h.engagementToggle(c, h.store.ToggleSave)
}

// SharePost records the caller as a sharer, once.
func (h *HTTPHandler) SharePost(c *gin.Context) {
	h.engagementToggle(c, h.store.RecordShare)
}

func (h *HTTPHandler) engagementToggle(c *gin.Context, op func(postID, userID string) error) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := op(c.Param("id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	post, err := h.store.GetPost(c.Param("id"))
	if err != nil {
		// The toggle was a silent no-op on a missing post; report it as such.
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ToggleReaction flips the caller's emoji reaction on the post.
func (h *HTTPHandler) ToggleReaction(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
		Emoji  string `json:"emoji" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.ToggleReaction(c.Param("id"), req.UserID, req.Emoji); err != nil {
		respondError(c, err)
		return
	}
	post, err := h.store.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, post)
}

// AddComment appends a comment to the post.
func (h *HTTPHandler) AddComment(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId" binding:"required"`
		UserName string `json:"userName"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment := models.Comment{UserID: req.UserID, UserName: req.UserName, Text: req.Text}
	if err := h.store.AddComment(c.Param("id"), comment); err != nil {
		respondError(c, err)
		return
	}
	post, err := h.store.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetAudioTracks returns the reel soundtrack catalog.
func (h *HTTPHandler) GetAudioTracks(c *gin.Context) {
	tracks, err := h.store.AudioTracks()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}
