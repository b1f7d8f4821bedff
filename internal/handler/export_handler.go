package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docverify/internal/export"
	"docverify/internal/service"
)

// exportBatchLimit caps how many analyses one export pulls.
const exportBatchLimit = 1000

// ExportHandler streams the caller's analyses as CSV or XLSX.
type ExportHandler struct {
	analysisService service.AnalysisService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(analysisService service.AnalysisService) *ExportHandler {
	return &ExportHandler{analysisService: analysisService}
}

// ExportCSV handles GET /api/v1/analyses/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	analyses, _, err := h.analysisService.List(c.Request.Context(), userID, 0, exportBatchLimit)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("analyses_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteAnalyses(analyses); err != nil {
		return
	}
	_ = w.Flush()
}

// ExportXLSX handles GET /api/v1/analyses/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	analyses, _, err := h.analysisService.List(c.Request.Context(), userID, 0, exportBatchLimit)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("analyses_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := export.WriteXLSX(c.Writer, analyses); err != nil {
		HandleError(c, err)
	}
}
