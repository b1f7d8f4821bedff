package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/port"
	"docverify/internal/service"
	"docverify/mocks"
)

type analysisFixture struct {
	analysisRepo *mocks.MockAnalysisRepo
	docTypeRepo  *mocks.MockDocumentTypeRepo
	fieldRepo    *mocks.MockUserDataFieldRepo
	fileRepo     *mocks.MockFileMetaRepo
	storage      *mocks.MockObjectStorage
	svc          service.AnalysisService
}

func setupAnalysis() *analysisFixture {
	f := &analysisFixture{
		analysisRepo: new(mocks.MockAnalysisRepo),
		docTypeRepo:  new(mocks.MockDocumentTypeRepo),
		fieldRepo:    new(mocks.MockUserDataFieldRepo),
		fileRepo:     new(mocks.MockFileMetaRepo),
		storage:      new(mocks.MockObjectStorage),
	}
	f.svc = service.NewAnalysisService(
		f.analysisRepo, f.docTypeRepo, f.fieldRepo, f.fileRepo, f.storage,
		&config.S3Config{Bucket: "docverify-test", MaxFileSizeMB: 1},
	)
	return f
}

// memFile adapts a byte slice to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(content []byte) multipart.File {
	return memFile{bytes.NewReader(content)}
}

func TestCreateAnalysis_SeedsChecklistAndUserData(t *testing.T) {
	f := setupAnalysis()
	userID := uuid.New()

	f.fieldRepo.On("List", mock.Anything).Return([]domain.UserDataField{
		{Key: "name"}, {Key: "cpf"},
	}, nil)
	f.docTypeRepo.On("List", mock.Anything).Return([]domain.DocumentType{
		{Name: "Termo de Responsabilidade", Position: 0},
		{Name: "Foto de Identidade", Position: 1},
	}, nil)
	f.analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	analysis, err := f.svc.Create(context.Background(), &service.CreateAnalysisInput{
		UserID:     userID,
		PersonName: "Ana Souza",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", analysis.PersonName)
	assert.Equal(t, "Ana Souza", analysis.UserData["name"])
	assert.Equal(t, "", analysis.UserData["cpf"])
	assert.Equal(t, domain.OverallStatusPendingDocs, analysis.OverallStatus)

	require.Len(t, analysis.Checklist, 2)
	assert.Equal(t, "Termo de Responsabilidade", analysis.Checklist[0].DocumentType)
	assert.Equal(t, domain.ChecklistStatusPending, analysis.Checklist[0].Status)
	assert.Equal(t, 1, analysis.Checklist[1].Position)
}

func TestCreateAnalysis_NoFieldsConfigured(t *testing.T) {
	f := setupAnalysis()

	f.fieldRepo.On("List", mock.Anything).Return([]domain.UserDataField{}, nil)

	_, err := f.svc.Create(context.Background(), &service.CreateAnalysisInput{
		UserID:     uuid.New(),
		PersonName: "Ana",
	})

	assert.ErrorIs(t, err, domain.ErrNoUserDataFields)
	f.analysisRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUserData_DropsUnknownKeys(t *testing.T) {
	f := setupAnalysis()
	userID := uuid.New()
	analysisID := uuid.New()

	analysis := &domain.Analysis{
		ID: analysisID, UserID: userID, PersonName: "Ana",
		UserData: domain.UserData{"name": "Ana", "cpf": ""},
	}
	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return([]domain.UserDataField{
		{Key: "name"}, {Key: "cpf"},
	}, nil)
	f.analysisRepo.On("UpdateUserData", mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateUserData(context.Background(), userID, analysisID, domain.UserData{
		"name":      "Ana Maria Souza",
		"cpf":       "12345678901",
		"malicious": "dropped",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Maria Souza", updated.UserData["name"])
	assert.Equal(t, "Ana Maria Souza", updated.PersonName)
	assert.Equal(t, "12345678901", updated.UserData["cpf"])
	assert.NotContains(t, updated.UserData, "malicious")
}

func TestUploadDocument_JPEG(t *testing.T) {
	f := setupAnalysis()
	userID := uuid.New()
	analysisID := uuid.New()
	itemID := uuid.New()

	analysis := &domain.Analysis{ID: analysisID, UserID: userID}
	item := &domain.ChecklistItem{ID: itemID, AnalysisID: analysisID, Status: domain.ChecklistStatusPending}

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.analysisRepo.On("GetItem", mock.Anything, analysisID, itemID).Return(item, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{ETag: "etag"}, nil)
	f.fileRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.FileMeta) bool {
		return m.FileType == domain.FileTypeJPG && m.ContentType == "image/jpeg" && m.SHA256 != ""
	})).Return(nil)
	f.analysisRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return([]domain.ChecklistItem{*item}, nil)
	f.analysisRepo.On("UpdateOverallStatus", mock.Anything, analysisID, mock.Anything).Return(nil)

	content := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 64)...)
	result, err := f.svc.UploadDocument(context.Background(), &service.UploadDocumentInput{
		UserID:     userID,
		AnalysisID: analysisID,
		ItemID:     itemID,
		File:       newMemFile(content),
		Header:     &multipart.FileHeader{Filename: "identidade.jpg", Size: int64(len(content))},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ChecklistStatusUploaded, result.Status)
	assert.NotNil(t, result.FileID)
	assert.Nil(t, result.Result)
}

func TestUploadDocument_ExtensionMismatch(t *testing.T) {
	f := setupAnalysis()
	userID := uuid.New()
	analysisID := uuid.New()
	itemID := uuid.New()

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(&domain.Analysis{ID: analysisID, UserID: userID}, nil)
	f.analysisRepo.On("GetItem", mock.Anything, analysisID, itemID).Return(&domain.ChecklistItem{ID: itemID, AnalysisID: analysisID}, nil)

	// PNG magic bytes behind a .jpg name.
	content := []byte("\x89PNG\r\n\x1a\nrest")
	_, err := f.svc.UploadDocument(context.Background(), &service.UploadDocumentInput{
		UserID:     userID,
		AnalysisID: analysisID,
		ItemID:     itemID,
		File:       newMemFile(content),
		Header:     &multipart.FileHeader{Filename: "foto.jpg", Size: int64(len(content))},
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadDocument_TooLarge(t *testing.T) {
	f := setupAnalysis()
	userID := uuid.New()
	analysisID := uuid.New()
	itemID := uuid.New()

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(&domain.Analysis{ID: analysisID, UserID: userID}, nil)
	f.analysisRepo.On("GetItem", mock.Anything, analysisID, itemID).Return(&domain.ChecklistItem{ID: itemID, AnalysisID: analysisID}, nil)

	_, err := f.svc.UploadDocument(context.Background(), &service.UploadDocumentInput{
		UserID:     userID,
		AnalysisID: analysisID,
		ItemID:     itemID,
		File:       newMemFile([]byte{0xFF, 0xD8}),
		Header:     &multipart.FileHeader{Filename: "grande.jpg", Size: 2 * 1024 * 1024},
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestRemoveDocument_ResetsSlot(t *testing.T) {
	f := setupAnalysis()
	userID := uuid.New()
	analysisID := uuid.New()
	itemID := uuid.New()
	fileID := uuid.New()
	result := "CORRETO"

	item := &domain.ChecklistItem{
		ID: itemID, AnalysisID: analysisID, FileID: &fileID,
		Status: domain.ChecklistStatusSuccess, Result: &result,
	}

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(&domain.Analysis{ID: analysisID, UserID: userID}, nil)
	f.analysisRepo.On("GetItem", mock.Anything, analysisID, itemID).Return(item, nil)
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.FileMeta{ID: fileID, S3Bucket: "b", S3Key: "k"}, nil)
	f.storage.On("Delete", mock.Anything, "b", "k").Return(nil)
	f.fileRepo.On("Delete", mock.Anything, fileID).Return(nil)
	f.analysisRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return([]domain.ChecklistItem{*item}, nil)
	f.analysisRepo.On("UpdateOverallStatus", mock.Anything, analysisID, mock.Anything).Return(nil)

	updated, err := f.svc.RemoveDocument(context.Background(), userID, analysisID, itemID)

	require.NoError(t, err)
	assert.Equal(t, domain.ChecklistStatusPending, updated.Status)
	assert.Nil(t, updated.FileID)
	assert.Nil(t, updated.Result)
	f.storage.AssertCalled(t, "Delete", mock.Anything, "b", "k")
}
