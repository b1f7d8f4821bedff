package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docverify/internal/domain"
	"docverify/internal/middleware"
	"docverify/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Details carries per-field
// validation messages when present.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png, txt"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return http.StatusNotFound, "ANALYSIS_NOT_FOUND", "analysis not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "ITEM_NOT_FOUND", "checklist item not found"
	case errors.Is(err, domain.ErrItemNotUploaded):
		return http.StatusBadRequest, "ITEM_NOT_UPLOADED", "checklist item has no uploaded file"
	case errors.Is(err, domain.ErrDuplicateDocumentType):
		return http.StatusConflict, "DUPLICATE_DOCUMENT_TYPE", "document type already exists"
	case errors.Is(err, domain.ErrDocumentTypeInUse):
		return http.StatusConflict, "DOCUMENT_TYPE_IN_USE", "document type is still referenced"
	case errors.Is(err, domain.ErrDuplicateField):
		return http.StatusConflict, "DUPLICATE_FIELD", "a field with this key already exists"
	case errors.Is(err, domain.ErrFieldProtected):
		return http.StatusBadRequest, "FIELD_PROTECTED", "field is protected and cannot be removed"
	case errors.Is(err, domain.ErrFieldNotFound):
		return http.StatusNotFound, "FIELD_NOT_FOUND", "user data field not found"
	case errors.Is(err, domain.ErrUserDataInvalid):
		return http.StatusBadRequest, "USER_DATA_INVALID", "user data failed validation"
	case errors.Is(err, domain.ErrNoUploadedItems):
		return http.StatusBadRequest, "NO_UPLOADED_ITEMS", "no uploaded documents to verify"
	case errors.Is(err, domain.ErrRunInProgress):
		return http.StatusConflict, "RUN_IN_PROGRESS", "a verification run is already in progress for this analysis"
	case errors.Is(err, domain.ErrCredentialMissing):
		return http.StatusBadRequest, "CREDENTIAL_MISSING", "model API credential not provided; send X-Model-Api-Key or configure a server key"
	case errors.Is(err, domain.ErrNoUserDataFields):
		return http.StatusConflict, "NO_USER_DATA_FIELDS", "no user data fields are configured"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractUserID extracts the authenticated user ID from the request context.
// Returns false if auth context is missing (error response already written).
func extractUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

// HandleError maps a domain error and sends the appropriate error response.
// Field validation failures carry the per-field messages in the details.
func HandleError(c *gin.Context, err error) {
	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    "USER_DATA_INVALID",
				Message: "user data failed validation",
				Details: valErr.Fields,
			},
		})
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
