package main

import (
	"fmt"
	"log"

	"docverify/internal/config"
	"docverify/internal/email/noop"
	"docverify/internal/email/ses"
	"docverify/internal/handler"
	"docverify/internal/normalize"
	"docverify/internal/port"
	"docverify/internal/repository/postgres"
	"docverify/internal/router"
	"docverify/internal/service"
	s3storage "docverify/internal/storage/s3"
	"docverify/internal/verifier"
	"docverify/internal/verifier/gemini"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	docTypeRepo := postgres.NewDocumentTypeRepo(db)
	fieldRepo := postgres.NewUserDataFieldRepo(db)
	promptRepo := postgres.NewPromptRepo(db)
	analysisRepo := postgres.NewAnalysisRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize the verification pipeline
	modelClient := gemini.NewClient(&cfg.Verifier)
	normalizer := normalize.New(cfg.Verifier.PDFScale)
	docVerifier := verifier.NewClient(normalizer, modelClient)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	analysisSvc := service.NewAnalysisService(analysisRepo, docTypeRepo, fieldRepo, fileRepo, s3Client, &cfg.S3)
	docTypeSvc := service.NewDocumentTypeService(docTypeRepo)
	fieldSvc := service.NewFieldService(fieldRepo)
	promptSvc := service.NewPromptService(promptRepo, docTypeRepo)
	runner := service.NewVerificationRunner(
		analysisRepo, fieldRepo, promptRepo, fileRepo,
		s3Client, docVerifier, emailSender,
		cfg.Email.NotifyTo, cfg.Verifier.APIKey,
	)
	defer runner.Wait()

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc, runner)
	adminH := handler.NewAdminHandler(docTypeSvc, fieldSvc)
	promptH := handler.NewPromptHandler(promptSvc)
	exportH := handler.NewExportHandler(analysisSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, analysisH, adminH, promptH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
