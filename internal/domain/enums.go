package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
	FileTypeTXT FileType = "txt"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
	FileTypeTXT: "text/plain",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"text/plain":      FileTypeTXT,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"txt":  FileTypeTXT,
}

// UserRole defines the operator role hierarchy.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
)

// ChecklistStatus represents the lifecycle of a single checklist item.
type ChecklistStatus string

const (
	ChecklistStatusPending   ChecklistStatus = "pending"
	ChecklistStatusUploaded  ChecklistStatus = "uploaded"
	ChecklistStatusAnalyzing ChecklistStatus = "analyzing"
	ChecklistStatusSuccess   ChecklistStatus = "success"
	ChecklistStatusError     ChecklistStatus = "error"
)

// OverallStatus is the derived status of a whole analysis. It is a pure
// function of the checklist and is never set independently.
type OverallStatus string

const (
	OverallStatusPendingDocs      OverallStatus = "pending_docs"
	OverallStatusCompletedSuccess OverallStatus = "completed_success"
	OverallStatusCompletedPending OverallStatus = "completed_pending"
)

// FieldValidation names the validation kind applied to a user-data field.
type FieldValidation string

const (
	FieldValidationNone        FieldValidation = ""
	FieldValidationCPF         FieldValidation = "cpf"
	FieldValidationZipCode     FieldValidation = "zipCode"
	FieldValidationDateOfBirth FieldValidation = "dateOfBirth"
)

// FieldType is the input type hint for a user-data field.
type FieldType string

const (
	FieldTypeText FieldType = "text"
	FieldTypeDate FieldType = "date"
	FieldTypeTel  FieldType = "tel"
)
