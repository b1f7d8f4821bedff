package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docverify/internal/domain"
	"docverify/internal/port"
)

// DocumentTypeService defines the document-type administration contract.
// Changes apply to analyses created afterwards; existing checklists keep
// their slots.
type DocumentTypeService interface {
	Create(ctx context.Context, name string) (*domain.DocumentType, error)
	List(ctx context.Context) ([]domain.DocumentType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentTypeService struct {
	docTypeRepo port.DocumentTypeRepository
}

// NewDocumentTypeService creates a new DocumentTypeService implementation.
func NewDocumentTypeService(docTypeRepo port.DocumentTypeRepository) DocumentTypeService {
	return &documentTypeService{docTypeRepo: docTypeRepo}
}

func (s *documentTypeService) Create(ctx context.Context, name string) (*domain.DocumentType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: document type name is empty", domain.ErrUserDataInvalid)
	}

	if _, err := s.docTypeRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateDocumentType
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("documentTypeService.Create: %w", err)
	}

	existing, err := s.docTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("documentTypeService.Create: %w", err)
	}

	docType := &domain.DocumentType{
		ID:       uuid.New(),
		Name:     name,
		Position: len(existing),
	}
	if err := s.docTypeRepo.Create(ctx, docType); err != nil {
		return nil, fmt.Errorf("documentTypeService.Create: %w", err)
	}
	return docType, nil
}

func (s *documentTypeService) List(ctx context.Context) ([]domain.DocumentType, error) {
	return s.docTypeRepo.List(ctx)
}

func (s *documentTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.docTypeRepo.Delete(ctx, id)
}
