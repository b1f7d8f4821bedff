package router

import (
	"github.com/gin-gonic/gin"

	"docverify/internal/domain"
	"docverify/internal/handler"
	"docverify/internal/middleware"
	"docverify/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	analysisH *handler.AnalysisHandler,
	adminH *handler.AdminHandler,
	promptH *handler.PromptHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health check
	r.GET("/healthz", healthH.Health)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Analyses and checklists
	analyses := protected.Group("/analyses")
	analyses.POST("", analysisH.Create)
	analyses.GET("", analysisH.List)
	analyses.GET("/export/csv", exportH.ExportCSV)
	analyses.GET("/export/xlsx", exportH.ExportXLSX)
	analyses.GET("/:id", analysisH.Get)
	analyses.DELETE("/:id", analysisH.Delete)
	analyses.PUT("/:id/user-data", analysisH.UpdateUserData)
	analyses.POST("/:id/items/:itemId/file", analysisH.UploadDocument)
	analyses.DELETE("/:id/items/:itemId/file", analysisH.RemoveDocument)
	analyses.POST("/:id/run", analysisH.StartRun)
	analyses.GET("/:id/run", analysisH.RunStatus)

	// Per-user prompt templates
	prompts := protected.Group("/prompts")
	prompts.GET("", promptH.List)
	prompts.PUT("", promptH.Save)
	prompts.DELETE("", promptH.ResetAll)

	// Admin routes - document type and field configuration
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/document-types", adminH.CreateDocumentType)
	admin.GET("/document-types", adminH.ListDocumentTypes)
	admin.DELETE("/document-types/:id", adminH.DeleteDocumentType)
	admin.POST("/fields", adminH.CreateField)
	admin.GET("/fields", adminH.ListFields)
	admin.DELETE("/fields/:key", adminH.DeleteField)

	return r
}
