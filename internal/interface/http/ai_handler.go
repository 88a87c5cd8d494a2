package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/logger"
)

// AIManager manages the Gemini client behind the suggestion endpoints.
type AIManager struct {
	projectID string
	location  string
	apiKey    string
	client    *genai.Client
}

// NewAIManager creates a new AI manager.
func NewAIManager(projectID, location string) *AIManager {
	return &AIManager{
		projectID: projectID,
		location:  location,
		apiKey:    os.Getenv("GOOGLE_CLOUD_API_KEY"),
	}
}

// Initialize initializes the Gemini client.
func (m *AIManager) Initialize(ctx context.Context) error {
	var client *genai.Client
	var err error

	if m.apiKey != "" {
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  m.apiKey,
			Backend: genai.BackendVertexAI,
		})
	} else {
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			Project:  m.projectID,
			Location: m.location,
			Backend:  genai.BackendVertexAI,
		})
	}

	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m.client = client
	return nil
}

var suggestionModels = []string{
	"gemini-2.0-flash-001",
	"gemini-1.5-pro-002",
	"gemini-1.5-flash-001",
}

// SuggestBioRequest is the request for bio suggestion.
type SuggestBioRequest struct {
	Name      string   `json:"name" binding:"required"`
	UserType  string   `json:"userType"`
	Interests []string `json:"interests"`
}

// SuggestBio drafts a short profile bio for a user.
func (h *HTTPHandler) SuggestBio(c *gin.Context) {
	if h.aiManager == nil || h.aiManager.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI suggestions not available"})
		return
	}

	var req SuggestBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := fmt.Sprintf(`You write short, friendly profile bios for a local commerce and community app.

Name: %s
Account type: %s
Interests: %s

Respond with pure JSON only, starting with { and ending with }, no code fences:
{
  "bio": "a bio of at most 160 characters, first person, no hashtags"
}`, req.Name, req.UserType, strings.Join(req.Interests, ", "))

	resp, usedModel, err := generateWithModels(c.Request.Context(), h.aiManager.client, suggestionModels, genai.Text(prompt))
	if err != nil {
		logger.Log.Sugar().Errorw("bio suggestion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestion"})
		return
	}
	if usedModel != suggestionModels[0] {
		logger.Log.Sugar().Infow("fallback model used", "model", usedModel)
	}

	var result struct {
		Bio string `json:"bio"`
	}
	if err := json.Unmarshal([]byte(extractJSON(collectPartsText(resp))), &result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse AI response"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SuggestAdCopyRequest is the request for ad copy suggestion.
type SuggestAdCopyRequest struct {
	Title       string `json:"title" binding:"required"`
	ProductName string `json:"productName"`
	Audience    string `json:"audience"`
}

// SuggestAdCopy drafts campaign copy for an advertiser.
func (h *HTTPHandler) SuggestAdCopy(c *gin.Context) {
	if h.aiManager == nil || h.aiManager.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI suggestions not available"})
		return
	}

	var req SuggestAdCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := fmt.Sprintf(`You write punchy ad copy for small local businesses.

Campaign title: %s
Product: %s
Audience: %s

Respond with pure JSON only, starting with { and ending with }, no code fences:
{
  "headline": "at most 40 characters",
  "body": "at most 140 characters"
}`, req.Title, req.ProductName, req.Audience)

	resp, usedModel, err := generateWithModels(c.Request.Context(), h.aiManager.client, suggestionModels, genai.Text(prompt))
	if err != nil {
		logger.Log.Sugar().Errorw("ad copy suggestion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestion"})
		return
	}
	if usedModel != suggestionModels[0] {
		logger.Log.Sugar().Infow("fallback model used", "model", usedModel)
	}

	var result struct {
		Headline string `json:"headline"`
		Body     string `json:"body"`
	}
	if err := json.Unmarshal([]byte(extractJSON(collectPartsText(resp))), &result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse AI response"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// extractJSON extracts the first JSON object from a string.
func extractJSON(text string) string {
	text = regexp.MustCompile("```json\\s*").ReplaceAllString(text, "")
	text = regexp.MustCompile("```\\s*").ReplaceAllString(text, "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(text[start : end+1])
	}
	return text
}

// collectPartsText concatenates text parts from a response.
func collectPartsText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// generateWithModels runs the models in order and returns the first successful response.
func generateWithModels(ctx context.Context, client *genai.Client, models []string, input []*genai.Content) (*genai.GenerateContentResponse, string, error) {
	var lastErr error
	for _, modelName := range models {
		resp, err := client.Models.GenerateContent(ctx, modelName, input, nil)
		if err != nil {
			lastErr = err
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				continue
			}
			return nil, "", err
		}
		return resp, modelName, nil
	}
	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", fmt.Errorf("no model response")
}
