package port

import (
	"context"

	"github.com/google/uuid"

	"docverify/internal/domain"
)

// UserRepository defines the contract for operator account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// DocumentTypeRepository defines the contract for the process-wide document
// type list.
type DocumentTypeRepository interface {
	Create(ctx context.Context, docType *domain.DocumentType) error
	GetByName(ctx context.Context, name string) (*domain.DocumentType, error)
	List(ctx context.Context) ([]domain.DocumentType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserDataFieldRepository defines the contract for the process-wide
// user-data field list.
type UserDataFieldRepository interface {
	Create(ctx context.Context, field *domain.UserDataField) error
	GetByKey(ctx context.Context, key string) (*domain.UserDataField, error)
	List(ctx context.Context) ([]domain.UserDataField, error)
	Delete(ctx context.Context, key string) error
}

// PromptRepository defines the contract for per-user prompt templates.
type PromptRepository interface {
	Upsert(ctx context.Context, prompt *domain.PromptTemplate) error
	GetByDocumentType(ctx context.Context, userID uuid.UUID, documentType string) (*domain.PromptTemplate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PromptTemplate, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// AnalysisRepository defines the contract for analysis persistence. All
// query methods include userID: analyses are scoped to the operator who
// created them.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*domain.Analysis, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error)
	UpdateUserData(ctx context.Context, analysis *domain.Analysis) error
	UpdateOverallStatus(ctx context.Context, analysisID uuid.UUID, status domain.OverallStatus) error
	Delete(ctx context.Context, userID, analysisID uuid.UUID) error

	GetItem(ctx context.Context, analysisID, itemID uuid.UUID) (*domain.ChecklistItem, error)
	ListItems(ctx context.Context, analysisID uuid.UUID) ([]domain.ChecklistItem, error)
	UpdateItem(ctx context.Context, item *domain.ChecklistItem) error
}

// FileMetaRepository defines the contract for uploaded file metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	Delete(ctx context.Context, fileID uuid.UUID) error
}
