package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docverify/internal/domain"
)

// MockUserRepo is a mock implementation of port.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockDocumentTypeRepo is a mock implementation of port.DocumentTypeRepository.
type MockDocumentTypeRepo struct {
	mock.Mock
}

func (m *MockDocumentTypeRepo) Create(ctx context.Context, docType *domain.DocumentType) error {
	args := m.Called(ctx, docType)
	return args.Error(0)
}

func (m *MockDocumentTypeRepo) GetByName(ctx context.Context, name string) (*domain.DocumentType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepo) List(ctx context.Context) ([]domain.DocumentType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserDataFieldRepo is a mock implementation of port.UserDataFieldRepository.
type MockUserDataFieldRepo struct {
	mock.Mock
}

func (m *MockUserDataFieldRepo) Create(ctx context.Context, field *domain.UserDataField) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

func (m *MockUserDataFieldRepo) GetByKey(ctx context.Context, key string) (*domain.UserDataField, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserDataField), args.Error(1)
}

func (m *MockUserDataFieldRepo) List(ctx context.Context) ([]domain.UserDataField, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserDataField), args.Error(1)
}

func (m *MockUserDataFieldRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockPromptRepo is a mock implementation of port.PromptRepository.
type MockPromptRepo struct {
	mock.Mock
}

func (m *MockPromptRepo) Upsert(ctx context.Context, prompt *domain.PromptTemplate) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *MockPromptRepo) GetByDocumentType(ctx context.Context, userID uuid.UUID, documentType string) (*domain.PromptTemplate, error) {
	args := m.Called(ctx, userID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromptTemplate), args.Error(1)
}

func (m *MockPromptRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PromptTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PromptTemplate), args.Error(1)
}

func (m *MockPromptRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAnalysisRepo is a mock implementation of port.AnalysisRepository.
type MockAnalysisRepo struct {
	mock.Mock
}

func (m *MockAnalysisRepo) Create(ctx context.Context, analysis *domain.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepo) GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, userID, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Analysis), args.Int(1), args.Error(2)
}

func (m *MockAnalysisRepo) UpdateUserData(ctx context.Context, analysis *domain.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepo) UpdateOverallStatus(ctx context.Context, analysisID uuid.UUID, status domain.OverallStatus) error {
	args := m.Called(ctx, analysisID, status)
	return args.Error(0)
}

func (m *MockAnalysisRepo) Delete(ctx context.Context, userID, analysisID uuid.UUID) error {
	args := m.Called(ctx, userID, analysisID)
	return args.Error(0)
}

func (m *MockAnalysisRepo) GetItem(ctx context.Context, analysisID, itemID uuid.UUID) (*domain.ChecklistItem, error) {
	args := m.Called(ctx, analysisID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChecklistItem), args.Error(1)
}

func (m *MockAnalysisRepo) ListItems(ctx context.Context, analysisID uuid.UUID) ([]domain.ChecklistItem, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChecklistItem), args.Error(1)
}

func (m *MockAnalysisRepo) UpdateItem(ctx context.Context, item *domain.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockFileMetaRepo is a mock implementation of port.FileMetaRepository.
type MockFileMetaRepo struct {
	mock.Mock
}

func (m *MockFileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

func (m *MockFileMetaRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileMeta), args.Error(1)
}

func (m *MockFileMetaRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
