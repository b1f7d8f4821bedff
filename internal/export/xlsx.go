package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docverify/internal/domain"
)

const sheetName = "Analyses"

// WriteXLSX renders a batch of analyses as a single-sheet workbook and
// writes it to w. Same rows as the CSV export.
func WriteXLSX(w io.Writer, analyses []domain.Analysis) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export.WriteXLSX: dropping default sheet: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
	}

	rowIdx := 2
	for i := range analyses {
		for _, row := range analysisToRows(&analyses[i]) {
			for col, value := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
				if err != nil {
					return fmt.Errorf("export.WriteXLSX: %w", err)
				}
				if err := f.SetCellValue(sheetName, cell, value); err != nil {
					return fmt.Errorf("export.WriteXLSX: %w", err)
				}
			}
			rowIdx++
		}
	}

	// Widen the result and user-data columns; verdicts run long.
	if err := f.SetColWidth(sheetName, "A", "D", 24); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	if err := f.SetColWidth(sheetName, "E", "F", 60); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: writing workbook: %w", err)
	}
	return nil
}
