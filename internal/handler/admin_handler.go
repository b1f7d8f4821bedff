package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docverify/internal/service"
)

// AdminHandler handles document-type and user-data-field administration.
// All routes require the admin role.
type AdminHandler struct {
	docTypeService service.DocumentTypeService
	fieldService   service.FieldService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(docTypeService service.DocumentTypeService, fieldService service.FieldService) *AdminHandler {
	return &AdminHandler{docTypeService: docTypeService, fieldService: fieldService}
}

type createDocTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateDocumentType handles POST /api/v1/admin/document-types
func (h *AdminHandler) CreateDocumentType(c *gin.Context) {
	var req createDocTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	docType, err := h.docTypeService.Create(c.Request.Context(), req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, docType)
}

// ListDocumentTypes handles GET /api/v1/admin/document-types
func (h *AdminHandler) ListDocumentTypes(c *gin.Context) {
	docTypes, err := h.docTypeService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docTypes)
}

// DeleteDocumentType handles DELETE /api/v1/admin/document-types/:id
func (h *AdminHandler) DeleteDocumentType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document type ID")
		return
	}

	if err := h.docTypeService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// CreateField handles POST /api/v1/admin/fields
func (h *AdminHandler) CreateField(c *gin.Context) {
	var input service.CreateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	field, change, err := h.fieldService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"field": field, "change": change})
}

// ListFields handles GET /api/v1/admin/fields
func (h *AdminHandler) ListFields(c *gin.Context) {
	fields, err := h.fieldService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, fields)
}

// DeleteField handles DELETE /api/v1/admin/fields/:key
func (h *AdminHandler) DeleteField(c *gin.Context) {
	key := c.Param("key")

	change, err := h.fieldService.Delete(c.Request.Context(), key)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true, "change": change})
}
