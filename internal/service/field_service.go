package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"docverify/internal/domain"
	"docverify/internal/port"
)

var fieldKeyPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// FieldChange tells clients that the field catalog shifted, so analyses
// created earlier may be missing the key (or still carry it) in their
// user data until the next edit.
type FieldChange struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// CreateFieldInput is the DTO for adding a user-data field.
type CreateFieldInput struct {
	Key        string                 `json:"key" binding:"required"`
	Label      string                 `json:"label" binding:"required"`
	Type       domain.FieldType       `json:"type"`
	Validation domain.FieldValidation `json:"validation"`
}

// FieldService defines the user-data field administration contract.
type FieldService interface {
	Create(ctx context.Context, input CreateFieldInput) (*domain.UserDataField, *FieldChange, error)
	List(ctx context.Context) ([]domain.UserDataField, error)
	Delete(ctx context.Context, key string) (*FieldChange, error)
}

type fieldService struct {
	fieldRepo port.UserDataFieldRepository
}

// NewFieldService creates a new FieldService implementation.
func NewFieldService(fieldRepo port.UserDataFieldRepository) FieldService {
	return &fieldService{fieldRepo: fieldRepo}
}

func (s *fieldService) Create(ctx context.Context, input CreateFieldInput) (*domain.UserDataField, *FieldChange, error) {
	if !fieldKeyPattern.MatchString(input.Key) {
		return nil, nil, fmt.Errorf("%w: field key must be alphanumeric and start with a letter", domain.ErrUserDataInvalid)
	}

	if _, err := s.fieldRepo.GetByKey(ctx, input.Key); err == nil {
		return nil, nil, domain.ErrDuplicateField
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("fieldService.Create: %w", err)
	}

	if input.Type == "" {
		input.Type = domain.FieldTypeText
	}

	field := &domain.UserDataField{
		ID:         uuid.New(),
		Key:        input.Key,
		Label:      input.Label,
		Type:       input.Type,
		Validation: input.Validation,
	}
	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, nil, fmt.Errorf("fieldService.Create: %w", err)
	}
	return field, &FieldChange{Key: field.Key, Action: "added"}, nil
}

func (s *fieldService) List(ctx context.Context) ([]domain.UserDataField, error) {
	return s.fieldRepo.List(ctx)
}

func (s *fieldService) Delete(ctx context.Context, key string) (*FieldChange, error) {
	field, err := s.fieldRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, fmt.Errorf("fieldService.Delete: %w", err)
	}
	if field.IsProtected {
		return nil, domain.ErrFieldProtected
	}
	if err := s.fieldRepo.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("fieldService.Delete: %w", err)
	}
	return &FieldChange{Key: key, Action: "removed"}, nil
}
