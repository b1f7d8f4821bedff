package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docverify/internal/domain"
	"docverify/internal/port"
	"docverify/internal/prompt"
)

// PromptView is one document type's effective template. Custom marks whether
// the user has overridden the default.
type PromptView struct {
	DocumentType string `json:"document_type"`
	Template     string `json:"template"`
	Custom       bool   `json:"custom"`
}

// PromptService manages per-user prompt templates. Every user starts from the
// built-in defaults; overrides are stored per user and per document type.
type PromptService interface {
	List(ctx context.Context, userID uuid.UUID) ([]PromptView, error)
	Save(ctx context.Context, userID uuid.UUID, documentType, template string) (*domain.PromptTemplate, error)
	ResetAll(ctx context.Context, userID uuid.UUID) error
}

type promptService struct {
	promptRepo  port.PromptRepository
	docTypeRepo port.DocumentTypeRepository
}

// NewPromptService creates a new PromptService implementation.
func NewPromptService(promptRepo port.PromptRepository, docTypeRepo port.DocumentTypeRepository) PromptService {
	return &promptService{promptRepo: promptRepo, docTypeRepo: docTypeRepo}
}

// List returns the effective template for every configured document type,
// in checklist order.
func (s *promptService) List(ctx context.Context, userID uuid.UUID) ([]PromptView, error) {
	docTypes, err := s.docTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("promptService.List: %w", err)
	}
	overrides, err := s.promptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("promptService.List: %w", err)
	}

	custom := make(map[string]string, len(overrides))
	for _, o := range overrides {
		custom[o.DocumentType] = o.Template
	}

	views := make([]PromptView, 0, len(docTypes))
	for _, docType := range docTypes {
		view := PromptView{
			DocumentType: docType.Name,
			Template:     prompt.DefaultTemplateFor(docType.Name),
		}
		if tmpl, ok := custom[docType.Name]; ok {
			view.Template = tmpl
			view.Custom = true
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *promptService) Save(ctx context.Context, userID uuid.UUID, documentType, template string) (*domain.PromptTemplate, error) {
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("%w: template is empty", domain.ErrUserDataInvalid)
	}

	if _, err := s.docTypeRepo.GetByName(ctx, documentType); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("promptService.Save: %w", err)
	}

	p := &domain.PromptTemplate{
		ID:           uuid.New(),
		UserID:       userID,
		DocumentType: documentType,
		Template:     template,
	}
	if err := s.promptRepo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("promptService.Save: %w", err)
	}
	return p, nil
}

// ResetAll drops every override for the user, restoring the defaults.
func (s *promptService) ResetAll(ctx context.Context, userID uuid.UUID) error {
	return s.promptRepo.DeleteByUser(ctx, userID)
}
