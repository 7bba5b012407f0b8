package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/smartworkplace/assistant-api/internal/errors"
	"github.com/smartworkplace/assistant-api/internal/middleware"
	"github.com/smartworkplace/assistant-api/internal/services"
)

// AssistantHandler coordinates the AI advice HTTP handlers.
type AssistantHandler struct {
	assistantService *services.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
	}
}

// Chat answers a productivity question grounded in the user's recent tasks.
func (h *AssistantHandler) Chat(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChatRequest struct {
		Query   string `json:"query" binding:"required"`
		Context string `json:"context"`
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	response, contextUsed, err := h.assistantService.Chat(c.Request.Context(), userID, req.Query, req.Context)
	if err != nil {
		if errors.Is(err, services.ErrAIServiceNotConfigured) {
			apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
			return
		}
		apierrors.InternalError(c, "Failed to generate advice")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":     response,
		"context_used": contextUsed,
	})
}

// Insights returns a handful of productivity observations. The service
// degrades to canned text on AI failures, so this rarely errors.
func (h *AssistantHandler) Insights(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	insights, err := h.assistantService.Insights(c.Request.Context(), userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate insights")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights": insights,
	})
}
