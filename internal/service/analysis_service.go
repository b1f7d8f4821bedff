package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/port"
)

// CreateAnalysisInput is the DTO for creating an analysis.
type CreateAnalysisInput struct {
	UserID     uuid.UUID
	PersonName string
}

// UploadDocumentInput is the DTO for attaching a file to a checklist item.
type UploadDocumentInput struct {
	UserID     uuid.UUID
	AnalysisID uuid.UUID
	ItemID     uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// AnalysisService defines the analysis management contract.
type AnalysisService interface {
	Create(ctx context.Context, input *CreateAnalysisInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error)
	UpdateUserData(ctx context.Context, userID, analysisID uuid.UUID, data domain.UserData) (*domain.Analysis, error)
	UploadDocument(ctx context.Context, input *UploadDocumentInput) (*domain.ChecklistItem, error)
	RemoveDocument(ctx context.Context, userID, analysisID, itemID uuid.UUID) (*domain.ChecklistItem, error)
	Delete(ctx context.Context, userID, analysisID uuid.UUID) error
}

type analysisService struct {
	analysisRepo port.AnalysisRepository
	docTypeRepo  port.DocumentTypeRepository
	fieldRepo    port.UserDataFieldRepository
	fileRepo     port.FileMetaRepository
	storage      port.ObjectStorage
	s3cfg        *config.S3Config
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	analysisRepo port.AnalysisRepository,
	docTypeRepo port.DocumentTypeRepository,
	fieldRepo port.UserDataFieldRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) AnalysisService {
	return &analysisService{
		analysisRepo: analysisRepo,
		docTypeRepo:  docTypeRepo,
		fieldRepo:    fieldRepo,
		fileRepo:     fileRepo,
		storage:      storage,
		s3cfg:        s3cfg,
	}
}

// Create builds one pending checklist slot per configured document type and
// seeds the user-data map from the configured fields, with the person name
// populating the "name" field.
func (s *analysisService) Create(ctx context.Context, input *CreateAnalysisInput) (*domain.Analysis, error) {
	fields, err := s.fieldRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("analysisService.Create: listing fields: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNoUserDataFields
	}

	docTypes, err := s.docTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("analysisService.Create: listing document types: %w", err)
	}

	userData := domain.UserData{}
	for _, field := range fields {
		if field.Key == "name" {
			userData[field.Key] = input.PersonName
		} else {
			userData[field.Key] = ""
		}
	}

	analysis := &domain.Analysis{
		ID:            uuid.New(),
		UserID:        input.UserID,
		PersonName:    input.PersonName,
		UserData:      userData,
		OverallStatus: domain.OverallStatusPendingDocs,
	}
	for i, docType := range docTypes {
		analysis.Checklist = append(analysis.Checklist, domain.ChecklistItem{
			ID:           uuid.New(),
			AnalysisID:   analysis.ID,
			DocumentType: docType.Name,
			Position:     i,
			Status:       domain.ChecklistStatusPending,
		})
	}

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("analysisService.Create: %w", err)
	}
	return analysis, nil
}

func (s *analysisService) GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*domain.Analysis, error) {
	return s.analysisRepo.GetByID(ctx, userID, analysisID)
}

func (s *analysisService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	return s.analysisRepo.ListByUser(ctx, userID, offset, limit)
}

// UpdateUserData replaces the analysis's user data, restricted to the
// configured field keys. Unknown keys are dropped silently.
func (s *analysisService) UpdateUserData(ctx context.Context, userID, analysisID uuid.UUID, data domain.UserData) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}

	fields, err := s.fieldRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("analysisService.UpdateUserData: listing fields: %w", err)
	}

	updated := domain.UserData{}
	for _, field := range fields {
		if v, ok := data[field.Key]; ok {
			updated[field.Key] = v
		} else {
			updated[field.Key] = analysis.UserData[field.Key]
		}
	}
	analysis.UserData = updated
	if name := updated["name"]; name != "" {
		analysis.PersonName = name
	}

	if err := s.analysisRepo.UpdateUserData(ctx, analysis); err != nil {
		return nil, fmt.Errorf("analysisService.UpdateUserData: %w", err)
	}
	return analysis, nil
}

// UploadDocument validates and stores a file for a checklist slot, moving
// the item to uploaded and clearing any previous result. The overall status
// is recomputed before returning.
func (s *analysisService) UploadDocument(ctx context.Context, input *UploadDocumentInput) (*domain.ChecklistItem, error) {
	analysis, err := s.analysisRepo.GetByID(ctx, input.UserID, input.AnalysisID)
	if err != nil {
		return nil, err
	}

	item, err := s.analysisRepo.GetItem(ctx, analysis.ID, input.ItemID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	content, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("analysisService.UploadDocument: reading file: %w", err)
	}

	contentType := domain.AllowedFileTypes[fileType]
	// Text files pass through on extension alone; binary types must match
	// their magic bytes.
	if fileType != domain.FileTypeTXT {
		detected := strings.Split(http.DetectContentType(content), ";")[0]
		if domain.AllowedContentTypes[detected] != fileType {
			return nil, domain.ErrUnsupportedFileType
		}
	}

	digest := sha256.Sum256(content)

	fileID := uuid.New()
	s3Key := fmt.Sprintf("analyses/%s/%s/%s", analysis.ID, item.ID, input.Header.Filename)
	meta := &domain.FileMeta{
		ID:           fileID,
		AnalysisID:   analysis.ID,
		ItemID:       item.ID,
		UploadedBy:   input.UserID,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     int64(len(content)),
		ContentType:  contentType,
		SHA256:       hex.EncodeToString(digest[:]),
		S3Bucket:     s.s3cfg.Bucket,
		S3Key:        s3Key,
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(content),
		ContentType: contentType,
		Size:        meta.FileSize,
	}); err != nil {
		log.Printf("analysisService.UploadDocument: S3 upload failed for item %s: %v", item.ID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.fileRepo.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("analysisService.UploadDocument: creating file metadata: %w", err)
	}

	// Replacing a file discards the previous one.
	if item.FileID != nil {
		s.discardFile(ctx, *item.FileID)
	}

	item.FileID = &fileID
	item.Status = domain.ChecklistStatusUploaded
	item.Result = nil
	if err := s.analysisRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("analysisService.UploadDocument: %w", err)
	}

	if err := s.recomputeOverall(ctx, analysis.ID); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveDocument returns a checklist slot to pending, clearing the result
// and discarding the stored file.
func (s *analysisService) RemoveDocument(ctx context.Context, userID, analysisID, itemID uuid.UUID) (*domain.ChecklistItem, error) {
	analysis, err := s.analysisRepo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}

	item, err := s.analysisRepo.GetItem(ctx, analysis.ID, itemID)
	if err != nil {
		return nil, err
	}

	if item.FileID != nil {
		s.discardFile(ctx, *item.FileID)
	}

	item.FileID = nil
	item.Status = domain.ChecklistStatusPending
	item.Result = nil
	if err := s.analysisRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("analysisService.RemoveDocument: %w", err)
	}

	if err := s.recomputeOverall(ctx, analysis.ID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *analysisService) Delete(ctx context.Context, userID, analysisID uuid.UUID) error {
	analysis, err := s.analysisRepo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return err
	}
	for _, item := range analysis.Checklist {
		if item.FileID != nil {
			s.discardFile(ctx, *item.FileID)
		}
	}
	return s.analysisRepo.Delete(ctx, userID, analysisID)
}

// discardFile removes a stored object and its metadata. Failures are logged
// but never block the checklist mutation.
func (s *analysisService) discardFile(ctx context.Context, fileID uuid.UUID) {
	meta, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		log.Printf("analysisService: loading file %s for discard: %v", fileID, err)
		return
	}
	if err := s.storage.Delete(ctx, meta.S3Bucket, meta.S3Key); err != nil {
		log.Printf("analysisService: deleting object %s: %v", meta.S3Key, err)
	}
	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		log.Printf("analysisService: deleting file metadata %s: %v", fileID, err)
	}
}

// recomputeOverall derives and persists the overall status from the current
// checklist. Runs after every checklist mutation; the status is never set
// directly anywhere else.
func (s *analysisService) recomputeOverall(ctx context.Context, analysisID uuid.UUID) error {
	items, err := s.analysisRepo.ListItems(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("analysisService: listing items for status: %w", err)
	}
	status := domain.ComputeOverallStatus(items)
	if err := s.analysisRepo.UpdateOverallStatus(ctx, analysisID, status); err != nil {
		return fmt.Errorf("analysisService: updating overall status: %w", err)
	}
	return nil
}
