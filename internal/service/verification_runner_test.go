package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/port"
	"docverify/internal/service"
	"docverify/mocks"
)

type runnerFixture struct {
	analysisRepo *mocks.MockAnalysisRepo
	fieldRepo    *mocks.MockUserDataFieldRepo
	promptRepo   *mocks.MockPromptRepo
	fileRepo     *mocks.MockFileMetaRepo
	storage      *mocks.MockObjectStorage
	verifier     *mocks.MockDocumentVerifier
	email        *mocks.MockEmailSender
	runner       *service.VerificationRunner
}

func setupRunner(notifyTo, fallbackKey string) *runnerFixture {
	f := &runnerFixture{
		analysisRepo: new(mocks.MockAnalysisRepo),
		fieldRepo:    new(mocks.MockUserDataFieldRepo),
		promptRepo:   new(mocks.MockPromptRepo),
		fileRepo:     new(mocks.MockFileMetaRepo),
		storage:      new(mocks.MockObjectStorage),
		verifier:     new(mocks.MockDocumentVerifier),
		email:        new(mocks.MockEmailSender),
	}
	f.runner = service.NewVerificationRunner(
		f.analysisRepo, f.fieldRepo, f.promptRepo, f.fileRepo,
		f.storage, f.verifier, f.email, notifyTo, fallbackKey,
	)
	return f
}

func validFields() []domain.UserDataField {
	return []domain.UserDataField{
		{Key: "name", Label: "Nome Completo", IsProtected: true},
		{Key: "cpf", Label: "CPF", Validation: domain.FieldValidationCPF, IsProtected: true},
	}
}

func TestStartRun_NoCredential(t *testing.T) {
	f := setupRunner("", "")

	err := f.runner.Start(context.Background(), uuid.New(), uuid.New(), "")

	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
	f.analysisRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartRun_FallbackCredential(t *testing.T) {
	f := setupRunner("", "server-key")
	userID := uuid.New()
	analysisID := uuid.New()

	analysis := &domain.Analysis{ID: analysisID, UserID: userID, UserData: domain.UserData{"name": "Ana", "cpf": "12345678901"}}
	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return(validFields(), nil)
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return([]domain.ChecklistItem{}, nil)

	err := f.runner.Start(context.Background(), userID, analysisID, "")

	// The fallback key passed the credential gate; the run then failed on
	// the empty checklist.
	assert.ErrorIs(t, err, domain.ErrNoUploadedItems)
}

func TestStartRun_InvalidUserData(t *testing.T) {
	f := setupRunner("", "server-key")
	userID := uuid.New()
	analysisID := uuid.New()

	analysis := &domain.Analysis{ID: analysisID, UserID: userID, UserData: domain.UserData{"name": "Ana", "cpf": "123"}}
	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return(validFields(), nil)

	err := f.runner.Start(context.Background(), userID, analysisID, "")

	assert.ErrorIs(t, err, domain.ErrUserDataInvalid)
	var valErr *service.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Fields, 1)
	assert.Equal(t, "cpf", valErr.Fields[0].Key)
}

func TestStartRun_RunAlreadyInProgress(t *testing.T) {
	f := setupRunner("", "")
	userID := uuid.New()
	analysisID := uuid.New()
	fileID := uuid.New()

	analysis := &domain.Analysis{ID: analysisID, UserID: userID, PersonName: "Ana", UserData: domain.UserData{"name": "Ana", "cpf": "12345678901"}}
	items := []domain.ChecklistItem{
		{ID: uuid.New(), AnalysisID: analysisID, DocumentType: "Foto de Identidade", FileID: &fileID, Status: domain.ChecklistStatusUploaded},
	}

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return(validFields(), nil)
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return(items, nil)
	f.analysisRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)
	f.analysisRepo.On("UpdateOverallStatus", mock.Anything, analysisID, mock.Anything).Return(nil)
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.FileMeta{ID: fileID, S3Bucket: "b", S3Key: "k", ContentType: "image/jpeg"}, nil)
	f.promptRepo.On("GetByDocumentType", mock.Anything, userID, "Foto de Identidade").Return(nil, domain.ErrNotFound)

	release := make(chan struct{})
	f.storage.On("Download", mock.Anything, "b", "k").Run(func(mock.Arguments) {
		<-release
	}).Return([]byte{0xFF, 0xD8}, nil)
	f.verifier.On("Verify", mock.Anything, mock.Anything).Return("CORRETO")

	require.NoError(t, f.runner.Start(context.Background(), userID, analysisID, "key"))
	assert.True(t, f.runner.Running(analysisID))

	err := f.runner.Start(context.Background(), userID, analysisID, "key")
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	close(release)
	f.runner.Wait()
	assert.False(t, f.runner.Running(analysisID))
}

func TestRun_TwoItems_MixedVerdicts(t *testing.T) {
	f := setupRunner("ops@example.com", "")
	userID := uuid.New()
	analysisID := uuid.New()
	fileA := uuid.New()
	fileB := uuid.New()

	analysis := &domain.Analysis{
		ID: analysisID, UserID: userID, PersonName: "Ana Souza",
		UserData: domain.UserData{"name": "Ana Souza", "cpf": "12345678901"},
	}
	items := []domain.ChecklistItem{
		{ID: uuid.New(), AnalysisID: analysisID, DocumentType: "Foto de Identidade", Position: 0, FileID: &fileA, Status: domain.ChecklistStatusUploaded},
		{ID: uuid.New(), AnalysisID: analysisID, DocumentType: "Termo de Responsabilidade", Position: 1, FileID: &fileB, Status: domain.ChecklistStatusUploaded},
	}

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return(validFields(), nil)

	// Persisted item updates feed back into the shared slice so the overall
	// status derivation sees run progress.
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return(items, nil)
	f.analysisRepo.On("UpdateItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated := args.Get(1).(*domain.ChecklistItem)
		for i := range items {
			if items[i].ID == updated.ID {
				items[i] = *updated
			}
		}
	}).Return(nil)

	var lastStatus domain.OverallStatus
	f.analysisRepo.On("UpdateOverallStatus", mock.Anything, analysisID, mock.Anything).Run(func(args mock.Arguments) {
		lastStatus = args.Get(2).(domain.OverallStatus)
	}).Return(nil)

	f.fileRepo.On("GetByID", mock.Anything, fileA).Return(&domain.FileMeta{ID: fileA, S3Bucket: "b", S3Key: "a", ContentType: "image/jpeg"}, nil)
	f.fileRepo.On("GetByID", mock.Anything, fileB).Return(&domain.FileMeta{ID: fileB, S3Bucket: "b", S3Key: "t", ContentType: "application/pdf"}, nil)
	f.storage.On("Download", mock.Anything, "b", "a").Return([]byte("img"), nil)
	f.storage.On("Download", mock.Anything, "b", "t").Return([]byte("pdf"), nil)
	f.promptRepo.On("GetByDocumentType", mock.Anything, userID, mock.Anything).Return(nil, domain.ErrNotFound)

	f.verifier.On("Verify", mock.Anything, mock.MatchedBy(func(in port.VerifyInput) bool {
		return in.ContentType == "image/jpeg"
	})).Return("CORRETO").Once()
	f.verifier.On("Verify", mock.Anything, mock.MatchedBy(func(in port.VerifyInput) bool {
		return in.ContentType == "application/pdf"
	})).Return("INCORRETO: CPF não corresponde").Once()

	f.email.On("SendRunSummary", mock.Anything, "ops@example.com", mock.MatchedBy(func(s port.RunSummary) bool {
		return s.PersonName == "Ana Souza" && s.Processed == 2 && s.Passed == 1 && s.Pendencies == 1
	})).Return(nil)

	require.NoError(t, f.runner.Start(context.Background(), userID, analysisID, "key"))
	f.runner.Wait()

	assert.Equal(t, domain.ChecklistStatusSuccess, items[0].Status)
	require.NotNil(t, items[0].Result)
	assert.Equal(t, "CORRETO", *items[0].Result)

	assert.Equal(t, domain.ChecklistStatusSuccess, items[1].Status)
	require.NotNil(t, items[1].Result)
	assert.Equal(t, "INCORRETO: CPF não corresponde", *items[1].Result)

	// A failing verdict is a pendency, never an item error.
	assert.Equal(t, domain.OverallStatusCompletedPending, lastStatus)
	f.email.AssertExpectations(t)
}

func TestRun_DownloadFailureIsContained(t *testing.T) {
	f := setupRunner("", "")
	userID := uuid.New()
	analysisID := uuid.New()
	fileA := uuid.New()
	fileB := uuid.New()

	analysis := &domain.Analysis{
		ID: analysisID, UserID: userID, PersonName: "Ana",
		UserData: domain.UserData{"name": "Ana", "cpf": "12345678901"},
	}
	items := []domain.ChecklistItem{
		{ID: uuid.New(), AnalysisID: analysisID, DocumentType: "Foto de Identidade", Position: 0, FileID: &fileA, Status: domain.ChecklistStatusUploaded},
		{ID: uuid.New(), AnalysisID: analysisID, DocumentType: "Carta de Recomendação", Position: 1, FileID: &fileB, Status: domain.ChecklistStatusUploaded},
	}

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return(validFields(), nil)
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return(items, nil)
	f.analysisRepo.On("UpdateItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated := args.Get(1).(*domain.ChecklistItem)
		for i := range items {
			if items[i].ID == updated.ID {
				items[i] = *updated
			}
		}
	}).Return(nil)
	f.analysisRepo.On("UpdateOverallStatus", mock.Anything, analysisID, mock.Anything).Return(nil)

	f.fileRepo.On("GetByID", mock.Anything, fileA).Return(&domain.FileMeta{ID: fileA, OriginalName: "id.jpg", S3Bucket: "b", S3Key: "a", ContentType: "image/jpeg"}, nil)
	f.fileRepo.On("GetByID", mock.Anything, fileB).Return(&domain.FileMeta{ID: fileB, OriginalName: "carta.pdf", S3Bucket: "b", S3Key: "c", ContentType: "application/pdf"}, nil)
	f.storage.On("Download", mock.Anything, "b", "a").Return(nil, errors.New("connection reset"))
	f.storage.On("Download", mock.Anything, "b", "c").Return([]byte("pdf"), nil)
	f.promptRepo.On("GetByDocumentType", mock.Anything, userID, mock.Anything).Return(nil, domain.ErrNotFound)
	f.verifier.On("Verify", mock.Anything, mock.Anything).Return("CORRETO").Once()

	require.NoError(t, f.runner.Start(context.Background(), userID, analysisID, "key"))
	f.runner.Wait()

	assert.Equal(t, domain.ChecklistStatusError, items[0].Status)
	require.NotNil(t, items[0].Result)
	assert.True(t, strings.HasPrefix(*items[0].Result, "Falha na análise: "))

	// The failure on the first item did not stop the second.
	assert.Equal(t, domain.ChecklistStatusSuccess, items[1].Status)
}

func TestRun_CustomPromptOverridesDefault(t *testing.T) {
	f := setupRunner("", "")
	userID := uuid.New()
	analysisID := uuid.New()
	fileID := uuid.New()

	analysis := &domain.Analysis{
		ID: analysisID, UserID: userID, PersonName: "Ana",
		UserData: domain.UserData{"name": "Ana", "cpf": "12345678901"},
	}
	items := []domain.ChecklistItem{
		{ID: uuid.New(), AnalysisID: analysisID, DocumentType: "Foto de Identidade", FileID: &fileID, Status: domain.ChecklistStatusUploaded},
	}

	f.analysisRepo.On("GetByID", mock.Anything, userID, analysisID).Return(analysis, nil)
	f.fieldRepo.On("List", mock.Anything).Return(validFields(), nil)
	f.analysisRepo.On("ListItems", mock.Anything, analysisID).Return(items, nil)
	f.analysisRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)
	f.analysisRepo.On("UpdateOverallStatus", mock.Anything, analysisID, mock.Anything).Return(nil)
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.FileMeta{ID: fileID, S3Bucket: "b", S3Key: "k", ContentType: "image/png"}, nil)
	f.storage.On("Download", mock.Anything, "b", "k").Return([]byte("img"), nil)
	f.promptRepo.On("GetByDocumentType", mock.Anything, userID, "Foto de Identidade").
		Return(&domain.PromptTemplate{Template: "Confira o nome {name}."}, nil)

	f.verifier.On("Verify", mock.Anything, mock.MatchedBy(func(in port.VerifyInput) bool {
		return in.Template == "Confira o nome {name}." && in.Credential == "key"
	})).Return("CORRETO").Once()

	require.NoError(t, f.runner.Start(context.Background(), userID, analysisID, "key"))
	f.runner.Wait()

	f.verifier.AssertExpectations(t)
}
