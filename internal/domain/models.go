package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an operator account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentType is an admin-configurable category label. It drives which
// checklist slots exist on new analyses and which prompt applies.
type DocumentType struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserDataField is an admin-configurable named datum usable as a template
// placeholder. Protected fields cannot be removed.
type UserDataField struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Key         string          `db:"key" json:"key"`
	Label       string          `db:"label" json:"label"`
	Type        FieldType       `db:"type" json:"type"`
	Validation  FieldValidation `db:"validation" json:"validation,omitempty"`
	IsProtected bool            `db:"is_protected" json:"is_protected"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// PromptTemplate is one user's verification prompt for a document type.
type PromptTemplate struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	DocumentType string    `db:"document_type" json:"document_type"`
	Template     string    `db:"template" json:"template"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ChecklistItem is one required document slot with upload/verification state.
// FileID is non-nil iff status is uploaded, analyzing, success or error;
// Result is non-nil only once status is success or error.
type ChecklistItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	AnalysisID   uuid.UUID       `db:"analysis_id" json:"analysis_id"`
	DocumentType string          `db:"document_type" json:"document_type"`
	Position     int             `db:"position" json:"position"`
	FileID       *uuid.UUID      `db:"file_id" json:"file_id"`
	Status       ChecklistStatus `db:"status" json:"status"`
	Result       *string         `db:"result" json:"result"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Analysis is one verification case for a person, bundling user data and a
// document checklist.
type Analysis struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	UserID        uuid.UUID     `db:"user_id" json:"user_id"`
	PersonName    string        `db:"person_name" json:"person_name"`
	UserData      UserData      `db:"user_data" json:"user_data"`
	OverallStatus OverallStatus `db:"overall_status" json:"overall_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	Checklist []ChecklistItem `db:"-" json:"checklist"`
}

// FileMeta stores metadata about an uploaded document file. Binary content
// lives in object storage only; the digest allows integrity checks on reload.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	AnalysisID   uuid.UUID  `db:"analysis_id" json:"analysis_id"`
	ItemID       uuid.UUID  `db:"item_id" json:"item_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	ContentType  string     `db:"content_type" json:"content_type"`
	SHA256       string     `db:"sha256" json:"sha256"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
