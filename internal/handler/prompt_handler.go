package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docverify/internal/service"
)

// PromptHandler handles per-user prompt template endpoints.
type PromptHandler struct {
	promptService service.PromptService
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(promptService service.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

// List handles GET /api/v1/prompts
func (h *PromptHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	views, err := h.promptService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, views)
}

type savePromptRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	Template     string `json:"template" binding:"required"`
}

// Save handles PUT /api/v1/prompts
func (h *PromptHandler) Save(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req savePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	prompt, err := h.promptService.Save(c.Request.Context(), userID, req.DocumentType, req.Template)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, prompt)
}

// ResetAll handles DELETE /api/v1/prompts
func (h *PromptHandler) ResetAll(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if err := h.promptService.ResetAll(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reset": true})
}
