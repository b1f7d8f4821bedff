package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"docverify/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row. One row per checklist item.
var columns = []string{
	"Person Name",
	"Overall Status",
	"Document Type",
	"Item Status",
	"Result",
	"User Data",
	"Analysis Created At",
	"Item Updated At",
}

// Writer wraps csv.Writer for exporting analyses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAnalyses converts a batch of analyses to CSV rows and writes them.
// An analysis with an empty checklist still produces one row.
func (w *Writer) WriteAnalyses(analyses []domain.Analysis) error {
	for i := range analyses {
		for _, row := range analysisToRows(&analyses[i]) {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func analysisToRows(a *domain.Analysis) [][]string {
	userData := ""
	if len(a.UserData) > 0 {
		if b, err := json.Marshal(a.UserData); err == nil {
			userData = string(b)
		}
	}

	if len(a.Checklist) == 0 {
		return [][]string{{
			a.PersonName,
			string(a.OverallStatus),
			"", "", "",
			userData,
			formatTime(a.CreatedAt),
			"",
		}}
	}

	rows := make([][]string, 0, len(a.Checklist))
	for _, item := range a.Checklist {
		result := ""
		if item.Result != nil {
			result = *item.Result
		}
		rows = append(rows, []string{
			a.PersonName,
			string(a.OverallStatus),
			item.DocumentType,
			string(item.Status),
			result,
			userData,
			formatTime(a.CreatedAt),
			formatTime(item.UpdatedAt),
		})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
