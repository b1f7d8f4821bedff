package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docverify/internal/domain"
	"docverify/internal/service"
)

// modelKeyHeader carries the per-run model API credential. It is used for the
// run only and never persisted.
const modelKeyHeader = "X-Model-Api-Key"

// AnalysisHandler handles analysis and checklist endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	runner          *service.VerificationRunner
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, runner *service.VerificationRunner) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, runner: runner}
}

type createAnalysisRequest struct {
	PersonName string `json:"person_name" binding:"required"`
}

// Create handles POST /api/v1/analyses
func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	analysis, err := h.analysisService.Create(c.Request.Context(), &service.CreateAnalysisInput{
		UserID:     userID,
		PersonName: req.PersonName,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, analysis)
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	analyses, total, err := h.analysisService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}

	analysis, err := h.analysisService.GetByID(c.Request.Context(), userID, analysisID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

// UpdateUserData handles PUT /api/v1/analyses/:id/user-data
func (h *AnalysisHandler) UpdateUserData(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}

	var data domain.UserData
	if err := c.ShouldBindJSON(&data); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	analysis, err := h.analysisService.UpdateUserData(c.Request.Context(), userID, analysisID, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

// Delete handles DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), userID, analysisID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// UploadDocument handles POST /api/v1/analyses/:id/items/:itemId/file
func (h *AnalysisHandler) UploadDocument(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid item ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file form field is required")
		return
	}
	defer file.Close()

	item, err := h.analysisService.UploadDocument(c.Request.Context(), &service.UploadDocumentInput{
		UserID:     userID,
		AnalysisID: analysisID,
		ItemID:     itemID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// RemoveDocument handles DELETE /api/v1/analyses/:id/items/:itemId/file
func (h *AnalysisHandler) RemoveDocument(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid item ID")
		return
	}

	item, err := h.analysisService.RemoveDocument(c.Request.Context(), userID, analysisID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// StartRun handles POST /api/v1/analyses/:id/run
func (h *AnalysisHandler) StartRun(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}

	credential := c.GetHeader(modelKeyHeader)
	if err := h.runner.Start(c.Request.Context(), userID, analysisID, credential); err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, gin.H{"analysis_id": analysisID, "running": true})
}

// RunStatus handles GET /api/v1/analyses/:id/run
func (h *AnalysisHandler) RunStatus(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid analysis ID")
		return
	}

	RespondOK(c, gin.H{"analysis_id": analysisID, "running": h.runner.Running(analysisID)})
}
