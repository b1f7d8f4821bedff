package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"docverify/internal/domain"
	"docverify/internal/port"
	"docverify/internal/prompt"
	"docverify/internal/validator"
)

const itemTimeout = 5 * time.Minute

const analysisFailurePrefix = "Falha na análise: "

// ValidationError carries the per-field messages that blocked a run.
type ValidationError struct {
	Fields []validator.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("user data failed validation on %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrUserDataInvalid
}

// VerificationRunner orchestrates verification runs. One run per analysis at
// a time; items are processed strictly sequentially and every item outcome is
// persisted before the next item starts.
type VerificationRunner struct {
	analysisRepo port.AnalysisRepository
	fieldRepo    port.UserDataFieldRepository
	promptRepo   port.PromptRepository
	fileRepo     port.FileMetaRepository
	storage      port.ObjectStorage
	verifier     port.DocumentVerifier
	email        port.EmailSender
	notifyTo     string
	fallbackKey  string

	mu      sync.Mutex
	running map[uuid.UUID]struct{}
	wg      sync.WaitGroup
}

// NewVerificationRunner creates a new VerificationRunner.
func NewVerificationRunner(
	analysisRepo port.AnalysisRepository,
	fieldRepo port.UserDataFieldRepository,
	promptRepo port.PromptRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	verifier port.DocumentVerifier,
	email port.EmailSender,
	notifyTo string,
	fallbackKey string,
) *VerificationRunner {
	return &VerificationRunner{
		analysisRepo: analysisRepo,
		fieldRepo:    fieldRepo,
		promptRepo:   promptRepo,
		fileRepo:     fileRepo,
		storage:      storage,
		verifier:     verifier,
		email:        email,
		notifyTo:     notifyTo,
		fallbackKey:  fallbackKey,
		running:      make(map[uuid.UUID]struct{}),
	}
}

// Start checks the run preconditions, claims the analysis and kicks off the
// run in the background. It returns once the run is accepted; progress lands
// on the checklist items as they are processed.
//
// Preconditions, in order: a credential must be available, the user data must
// pass field validation, and at least one item must be in uploaded state.
func (r *VerificationRunner) Start(ctx context.Context, userID, analysisID uuid.UUID, credential string) error {
	if credential == "" {
		credential = r.fallbackKey
	}
	if credential == "" {
		return domain.ErrCredentialMissing
	}

	analysis, err := r.analysisRepo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return err
	}

	fields, err := r.fieldRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("verificationRunner.Start: listing fields: %w", err)
	}
	if fieldErrs := validator.ValidateFields(fields, analysis.UserData); len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}

	items, err := r.analysisRepo.ListItems(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("verificationRunner.Start: listing items: %w", err)
	}
	var queue []domain.ChecklistItem
	for _, item := range items {
		if item.Status == domain.ChecklistStatusUploaded {
			queue = append(queue, item)
		}
	}
	if len(queue) == 0 {
		return domain.ErrNoUploadedItems
	}

	r.mu.Lock()
	if _, inFlight := r.running[analysisID]; inFlight {
		r.mu.Unlock()
		return domain.ErrRunInProgress
	}
	r.running[analysisID] = struct{}{}
	r.mu.Unlock()

	log.Printf("verificationRunner: starting run for analysis %s (%d item(s))", analysisID, len(queue))

	r.wg.Add(1)
	go r.run(analysis, queue, credential)
	return nil
}

// Running reports whether a run is currently in flight for the analysis.
func (r *VerificationRunner) Running(analysisID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, inFlight := r.running[analysisID]
	return inFlight
}

// Wait blocks until all in-flight runs finish. Used on shutdown.
func (r *VerificationRunner) Wait() {
	r.wg.Wait()
}

func (r *VerificationRunner) run(analysis *domain.Analysis, queue []domain.ChecklistItem, credential string) {
	defer r.wg.Done()
	defer func() {
		r.mu.Lock()
		delete(r.running, analysis.ID)
		r.mu.Unlock()
	}()

	for i := range queue {
		r.processItem(analysis, &queue[i], credential)
	}

	r.notify(analysis.ID, analysis.PersonName)
}

// processItem runs one checklist item through analyzing to a terminal state
// and persists the item plus the recomputed overall status. A failure inside
// one item never aborts the run.
func (r *VerificationRunner) processItem(analysis *domain.Analysis, item *domain.ChecklistItem, credential string) {
	ctx, cancel := context.WithTimeout(context.Background(), itemTimeout)
	defer cancel()

	item.Status = domain.ChecklistStatusAnalyzing
	item.Result = nil
	r.persistItem(ctx, item)

	verdict, err := r.verifyItem(ctx, analysis, item, credential)
	if err != nil {
		log.Printf("verificationRunner: item %s (%s) failed: %v", item.ID, item.DocumentType, err)
		item.Status = domain.ChecklistStatusError
		msg := analysisFailurePrefix + err.Error()
		item.Result = &msg
	} else {
		item.Status = domain.ChecklistStatusSuccess
		item.Result = &verdict
	}
	r.persistItem(ctx, item)
}

// verifyItem resolves the file content and prompt template for the item and
// hands both to the verifier. The verifier itself never fails; errors here
// mean the document could not be read at all.
func (r *VerificationRunner) verifyItem(ctx context.Context, analysis *domain.Analysis, item *domain.ChecklistItem, credential string) (string, error) {
	if item.FileID == nil {
		return "", domain.ErrItemNotUploaded
	}
	meta, err := r.fileRepo.GetByID(ctx, *item.FileID)
	if err != nil {
		return "", fmt.Errorf("loading file metadata: %w", err)
	}
	content, err := r.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", meta.OriginalName, err)
	}

	template := prompt.DefaultTemplateFor(item.DocumentType)
	if custom, err := r.promptRepo.GetByDocumentType(ctx, analysis.UserID, item.DocumentType); err == nil {
		template = custom.Template
	}

	verdict := r.verifier.Verify(ctx, port.VerifyInput{
		Content:     content,
		ContentType: meta.ContentType,
		Template:    template,
		UserData:    analysis.UserData,
		Credential:  credential,
	})
	return verdict, nil
}

func (r *VerificationRunner) persistItem(ctx context.Context, item *domain.ChecklistItem) {
	if err := r.analysisRepo.UpdateItem(ctx, item); err != nil {
		log.Printf("verificationRunner: persisting item %s: %v", item.ID, err)
		return
	}
	items, err := r.analysisRepo.ListItems(ctx, item.AnalysisID)
	if err != nil {
		log.Printf("verificationRunner: listing items for status: %v", err)
		return
	}
	status := domain.ComputeOverallStatus(items)
	if err := r.analysisRepo.UpdateOverallStatus(ctx, item.AnalysisID, status); err != nil {
		log.Printf("verificationRunner: updating overall status: %v", err)
	}
}

// notify emails a summary of the finished run when a recipient is configured.
func (r *VerificationRunner) notify(analysisID uuid.UUID, personName string) {
	if r.notifyTo == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := r.analysisRepo.ListItems(ctx, analysisID)
	if err != nil {
		log.Printf("verificationRunner: listing items for summary: %v", err)
		return
	}

	summary := port.RunSummary{
		PersonName:    personName,
		OverallStatus: string(domain.ComputeOverallStatus(items)),
	}
	for _, item := range items {
		switch item.Status {
		case domain.ChecklistStatusSuccess:
			summary.Processed++
			if item.Result != nil && domain.ParseVerdict(*item.Result) == domain.VerdictOutcomePass {
				summary.Passed++
			} else {
				summary.Pendencies++
			}
		case domain.ChecklistStatusError:
			summary.Processed++
			summary.Pendencies++
		}
	}

	if err := r.email.SendRunSummary(ctx, r.notifyTo, summary); err != nil {
		log.Printf("verificationRunner: sending run summary: %v", err)
	}
}
