package rossum

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes an extraction result as an XLSX workbook: one "Fields"
// sheet with the flattened field list and one sheet per extracted table.
// Parent directories are created as needed.
func ExportXLSX(result *ExtractionResult, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const fieldsSheet = "Fields"
	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return err
	}

	headers := []string{"Name", "Title", "Value", "Score"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(fieldsSheet, cell, h)
	}

	row := 2
	for _, field := range result.Fields {
		row = writeFieldRows(f, fieldsSheet, field, "", row)
	}

	for i, table := range result.Tables {
		sheet := fmt.Sprintf("Table %d (page %d)", i+1, table.Page)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		for r, tableRow := range table.Rows {
			for c, cell := range tableRow.Cells {
				name, _ := excelize.CoordinatesToCellName(c+1, r+1)
				_ = f.SetCellValue(sheet, name, cell.Text())
			}
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeFieldRows appends one row per leaf field, prefixing nested names with
// their parent group name, and returns the next free row.
func writeFieldRows(f *excelize.File, sheet string, field Field, prefix string, row int) int {
	name := field.Name
	if prefix != "" {
		name = prefix + "." + name
	}
	if field.Composite() {
		for _, inner := range field.Content {
			row = writeFieldRows(f, sheet, inner, name, row)
		}
		return row
	}
	values := []any{name, field.Title, field.Value, field.Score}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	return row + 1
}
